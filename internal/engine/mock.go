package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"nacagen/internal/foilerr"
)

// Mock is a deterministic, in-process Runner. It writes the configured
// outputs into the working directory the way the real engine does.
type Mock struct {
	Report   string
	Plot     string
	Debug    string
	ExitCode int

	Inputs []string
}

func (m *Mock) Name() string {
	return "mock"
}

func (m *Mock) Run(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("workdir is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Inputs = append(m.Inputs, cfg.InputPath)

	outputs := []struct {
		name, body string
	}{
		{ReportFile, m.Report},
		{PlotFile, m.Plot},
		{DebugFile, m.Debug},
	}
	for _, o := range outputs {
		if o.body == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(cfg.WorkDir, o.name), []byte(o.body), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", o.name, err)
		}
	}

	result := &RunResult{ExitCode: m.ExitCode, TranscriptPath: cfg.TranscriptPath}
	if cfg.TranscriptPath != "" {
		if err := os.WriteFile(cfg.TranscriptPath, []byte("mock engine: no geometry computed\n"), 0o644); err != nil {
			return nil, fmt.Errorf("write transcript: %w", err)
		}
	}
	if m.ExitCode != 0 {
		return result, foilerr.NonZeroExit(m.Name(), m.ExitCode, nil)
	}
	return result, nil
}
