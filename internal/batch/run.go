package batch

import (
	"context"
	"fmt"
	"time"

	"nacagen/internal/generator"
	"nacagen/internal/namelist"
)

// Generator is the part of generator.Generator a batch needs.
type Generator interface {
	Generate(ctx context.Context, ps *namelist.ParameterSet) (*generator.Result, error)
}

type RunResult struct {
	BatchID   string
	Items     []ItemResult
	StartedAt time.Time
	EndedAt   time.Time
}

type ItemResult struct {
	Index  int
	Name   string
	Stem   string
	Schema string
	Points int
	Export string
}

// Run generates every request in order. The first failure stops the batch;
// the returned result holds the requests that completed before it.
func Run(ctx context.Context, b *Batch, gen Generator) (*RunResult, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator is required")
	}
	result := &RunResult{BatchID: b.ID, StartedAt: time.Now().UTC()}
	defer func() {
		result.EndedAt = time.Now().UTC()
	}()

	for idx := range b.Requests {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch %s stopped before request %d: %w", b.ID, idx+1, err)
		}
		res, err := gen.Generate(ctx, b.Request(idx))
		if err != nil {
			return result, fmt.Errorf("batch %s request %d: %w", b.ID, idx+1, err)
		}
		result.Items = append(result.Items, ItemResult{
			Index:  idx + 1,
			Name:   res.Name,
			Stem:   res.Stem,
			Schema: res.Coordinates.Schema.String(),
			Points: res.Coordinates.Len(),
			Export: res.Artifacts.Export,
		})
	}
	return result, nil
}
