// Package generator runs the full airfoil pipeline: designation, namelist,
// engine run, artifact relocation, report parsing and contour export.
//
// A Generator is not safe for concurrent use against the same root: runs
// that resolve to the same stem overwrite each other's files.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nacagen/internal/audit"
	"nacagen/internal/designation"
	"nacagen/internal/engine"
	"nacagen/internal/export"
	"nacagen/internal/foilerr"
	"nacagen/internal/logging"
	"nacagen/internal/namelist"
	"nacagen/internal/report"
	"nacagen/internal/workspace"
)

// DefaultTimeout bounds one engine run when Config.Timeout is zero.
const DefaultTimeout = 20 * time.Second

const actor = "generator"

// Config configures a Generator. Root and Executable have no defaults.
type Config struct {
	Root       string
	Executable string
	Timeout    time.Duration
	Group      string
	Env        map[string]string
	Ledger     bool
	Logger     *zap.Logger

	// Runner replaces the engine process, e.g. with engine.Mock. Executable
	// is not consulted when Runner is set.
	Runner engine.Runner
}

// Generator drives the engine for one workspace root.
type Generator struct {
	ws      *workspace.Workspace
	runner  engine.Runner
	timeout time.Duration
	group   string
	env     map[string]string
	ledger  *audit.Logger
	log     *zap.Logger
}

// Artifacts lists the files of one run. Plot and Debug are empty when the
// engine did not produce them.
type Artifacts struct {
	Input      string
	Report     string
	Plot       string
	Debug      string
	Transcript string
	Export     string
}

// Result is the outcome of a successful run.
type Result struct {
	Name        string
	Stem        string
	Coordinates *report.Coordinates
	Contour     export.Contour
	Artifacts   Artifacts
	Duration    time.Duration
}

// New validates cfg and prepares the workspace. The engine executable is
// checked before anything is created on disk.
func New(cfg Config) (*Generator, error) {
	log := logging.Component(cfg.Logger, actor)

	runner := cfg.Runner
	if runner == nil {
		proc, err := engine.NewProcess(cfg.Executable, cfg.Logger)
		if err != nil {
			return nil, err
		}
		runner = proc
	}

	ws, err := workspace.New(cfg.Root)
	if err != nil {
		return nil, err
	}
	if err := ws.EnsureDirs(); err != nil {
		return nil, err
	}

	g := &Generator{
		ws:      ws,
		runner:  runner,
		timeout: cfg.Timeout,
		group:   cfg.Group,
		env:     cfg.Env,
		log:     log,
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	if g.group == "" {
		g.group = namelist.DefaultGroup
	}
	if cfg.Ledger {
		g.ledger = audit.NewLogger(ws.LedgerPath)
	}
	return g, nil
}

// Workspace returns the layout the generator writes into.
func (g *Generator) Workspace() *workspace.Workspace { return g.ws }

// Ledger returns the run ledger, or nil when disabled.
func (g *Generator) Ledger() *audit.Logger { return g.ledger }

// Generate runs the pipeline for ps. When ps has no name, the derived
// designation is stored back into ps under "name". The namelist written to
// disk is kept even when a later step fails.
func (g *Generator) Generate(ctx context.Context, ps *namelist.ParameterSet) (*Result, error) {
	started := time.Now()

	name, err := resolveName(ps)
	if err != nil {
		return nil, err
	}
	stem := designation.Stem(name)
	if stem == "" {
		return nil, fmt.Errorf("name %q has no characters usable in a file name", name)
	}
	log := g.log.With(zap.String("name", name), zap.String("stem", stem))
	log.Info("generating airfoil")

	g.record(log, audit.EventGenerationStarted, stem, map[string]any{
		"name":   name,
		"runner": g.runner.Name(),
		"params": len(ps.Params()),
	})

	res, err := g.run(ctx, log, ps, name, stem)
	if err != nil {
		g.record(log, audit.EventGenerationFailed, stem, map[string]any{
			"name":  name,
			"kind":  string(foilerr.KindOf(err)),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("generate %s: %w", stem, err)
	}
	res.Duration = time.Since(started)

	g.record(log, audit.EventGenerationFinished, stem, map[string]any{
		"name":        name,
		"schema":      res.Coordinates.Schema.String(),
		"points":      res.Coordinates.Len(),
		"export":      res.Artifacts.Export,
		"duration_ms": res.Duration.Milliseconds(),
	})
	log.Info("airfoil generated",
		zap.String("schema", res.Coordinates.Schema.String()),
		zap.Int("points", res.Coordinates.Len()),
		zap.Duration("duration", res.Duration))
	return res, nil
}

func (g *Generator) run(ctx context.Context, log *zap.Logger, ps *namelist.ParameterSet, name, stem string) (*Result, error) {
	res := &Result{
		Name: name,
		Stem: stem,
		Artifacts: Artifacts{
			Input:      g.ws.InputPath(stem),
			Transcript: g.ws.TranscriptPath(stem),
		},
	}

	if err := g.writeNamelist(log, stem, res.Artifacts.Input, ps); err != nil {
		return nil, err
	}

	if _, err := g.runner.Run(ctx, engine.RunConfig{
		InputPath:      res.Artifacts.Input,
		WorkDir:        g.ws.Root,
		TranscriptPath: res.Artifacts.Transcript,
		Env:            g.env,
		Timeout:        g.timeout,
	}); err != nil {
		return nil, err
	}

	moved, err := engine.Relocate(g.ws.Root, stem, []engine.Artifact{
		{Name: engine.ReportFile, DestDir: g.ws.ReportDir},
		{Name: engine.PlotFile, DestDir: g.ws.PlotDir},
		{Name: engine.DebugFile, DestDir: g.ws.DebugDir},
	})
	if err != nil {
		return nil, err
	}
	for _, m := range moved {
		switch m.Dest {
		case g.ws.ReportPath(stem):
			res.Artifacts.Report = m.Dest
		case g.ws.PlotPath(stem):
			res.Artifacts.Plot = m.Dest
		case g.ws.DebugPath(stem):
			res.Artifacts.Debug = m.Dest
		}
		log.Debug("artifact relocated", zap.String("dest", m.Dest))
	}
	if res.Artifacts.Report == "" {
		return nil, errors.New("engine finished without writing " + engine.ReportFile)
	}

	coords, err := report.ParseFile(res.Artifacts.Report)
	if err != nil {
		return nil, err
	}
	res.Coordinates = coords

	contour, err := export.Splice(coords.X, coords.YUpper, coords.YLower)
	if err != nil {
		return nil, err
	}
	res.Contour = contour
	res.Artifacts.Export = g.ws.ExportPath(stem)
	if err := export.WriteFile(res.Artifacts.Export, name, contour); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveName returns the caller's name or derives one and stores it.
func resolveName(ps *namelist.ParameterSet) (string, error) {
	if v, ok := ps.Get("name"); ok {
		return v.Text(), nil
	}
	name, err := designation.FromParameters(ps)
	if err != nil {
		return "", err
	}
	ps.Set("name", namelist.String(name))
	return name, nil
}

// record writes a ledger event. Ledger failures are logged, never returned:
// the ledger is a side record of the pipeline, not part of it.
func (g *Generator) record(log *zap.Logger, eventType, stem string, payload map[string]any) {
	if g.ledger == nil {
		return
	}
	if err := g.ledger.Record(actor, eventType, stem, payload); err != nil {
		log.Warn("ledger write failed", zap.String("event", eventType), zap.Error(err))
	}
}
