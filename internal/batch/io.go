package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"nacagen/internal/paramfile"
)

type rawBatch struct {
	ID       string      `yaml:"id"`
	Defaults yaml.Node   `yaml:"defaults"`
	Requests []yaml.Node `yaml:"requests"`
}

// LoadBatch reads and validates a YAML (or JSON) batch file.
//
//	id: thickness-sweep
//	defaults:
//	  profile: "4"
//	  dencode: 2
//	requests:
//	  - toc: 0.09
//	  - toc: 0.12
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}
	return ParseBatch(data)
}

// ParseBatch decodes and validates batch file contents.
func ParseBatch(data []byte) (*Batch, error) {
	var raw rawBatch
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse batch yaml: %w", err)
	}

	b := &Batch{ID: raw.ID}
	if raw.Defaults.Kind != 0 {
		defaults, err := paramfile.FromNode(&raw.Defaults)
		if err != nil {
			return nil, fmt.Errorf("batch defaults: %w", err)
		}
		b.Defaults = defaults
	}
	for idx := range raw.Requests {
		ps, err := paramfile.FromNode(&raw.Requests[idx])
		if err != nil {
			return nil, fmt.Errorf("batch request %d: %w", idx+1, err)
		}
		b.Requests = append(b.Requests, ps)
	}
	if err := ValidateBatch(b); err != nil {
		return nil, err
	}
	return b, nil
}
