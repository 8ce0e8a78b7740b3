// Package engine runs the external naca456 executable and collects the
// files it leaves in its working directory.
package engine

import (
	"context"
	"time"
)

// Files the engine writes into its working directory on success.
const (
	ReportFile = "naca.out"
	PlotFile   = "naca.gnu"
	DebugFile  = "naca.dbg"
)

// Runner runs one engine invocation.
type Runner interface {
	Name() string
	Run(ctx context.Context, cfg RunConfig) (*RunResult, error)
}

// RunConfig configures an engine invocation.
type RunConfig struct {
	// InputPath is written to the engine's standard input, followed by a newline.
	InputPath      string
	WorkDir        string
	TranscriptPath string
	Env            map[string]string
	Timeout        time.Duration
}

// RunResult captures the result of a run.
type RunResult struct {
	ExitCode       int
	TranscriptPath string
	Duration       time.Duration
}
