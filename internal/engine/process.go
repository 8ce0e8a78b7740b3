package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"nacagen/internal/foilerr"
)

// waitDelay bounds how long Wait lingers on I/O after the process is killed.
const waitDelay = 2 * time.Second

// Process runs the engine as a child process.
type Process struct {
	Executable string
	Logger     *zap.Logger
}

// NewProcess validates executable once and returns a Runner for it. A
// missing, non-regular or non-executable file is a configuration error.
func NewProcess(executable string, logger *zap.Logger) (*Process, error) {
	if strings.TrimSpace(executable) == "" {
		return nil, foilerr.Configuration("", "engine executable is required", nil)
	}
	abs, err := filepath.Abs(executable)
	if err != nil {
		return nil, foilerr.Configuration(executable, "resolve executable path", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, foilerr.Configuration(abs, "engine executable not found", err)
	}
	if !info.Mode().IsRegular() {
		return nil, foilerr.Configuration(abs, "engine executable is not a regular file", nil)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return nil, foilerr.Configuration(abs, "engine executable is not executable", nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Process{Executable: abs, Logger: logger.With(zap.String("component", "engine"))}, nil
}

func (p *Process) Name() string {
	return filepath.Base(p.Executable)
}

// Run starts the engine in cfg.WorkDir, feeds it the input path and waits
// for it to exit. On timeout the whole process group is killed.
func (p *Process) Run(ctx context.Context, cfg RunConfig) (*RunResult, error) {
	if cfg.WorkDir == "" {
		return nil, errors.New("workdir is required")
	}
	if cfg.InputPath == "" {
		return nil, errors.New("input path is required")
	}

	workDir, err := filepath.Abs(cfg.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("resolve workdir: %w", err)
	}
	workDirInfo, err := os.Stat(workDir)
	if err != nil {
		return nil, fmt.Errorf("stat workdir: %w", err)
	}
	if !workDirInfo.IsDir() {
		return nil, fmt.Errorf("workdir is not a directory: %s", workDir)
	}

	var transcript io.Writer = io.Discard
	if cfg.TranscriptPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.TranscriptPath), 0o755); err != nil {
			return nil, fmt.Errorf("ensure transcript dir: %w", err)
		}
		transcriptFile, err := os.OpenFile(cfg.TranscriptPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open transcript: %w", err)
		}
		defer func() {
			_ = transcriptFile.Close()
		}()
		transcript = transcriptFile
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if cfg.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, p.Executable)
	cmd.Dir = workDir
	cmd.Stdin = strings.NewReader(cfg.InputPath + "\n")
	cmd.Stdout = transcript
	cmd.Stderr = transcript
	cmd.Env = mergeEnv(os.Environ(), cfg.Env)
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	result := &RunResult{TranscriptPath: cfg.TranscriptPath}
	log := p.Logger.With(zap.String("input", cfg.InputPath), zap.String("workdir", workDir))
	log.Debug("engine started", zap.Duration("timeout", cfg.Timeout))

	started := time.Now()
	runErr := cmd.Run()
	result.Duration = time.Since(started)

	if runErr == nil {
		log.Debug("engine finished", zap.Duration("duration", result.Duration))
		return result, nil
	}

	result.ExitCode = exitCodeFromError(runErr)
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		log.Debug("engine timed out", zap.Duration("duration", result.Duration))
		return result, foilerr.ExecutionTimeout(p.Executable, cfg.Timeout, runErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("engine run cancelled: %w", err)
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		log.Debug("engine failed", zap.Int("exit_code", result.ExitCode))
		return result, foilerr.NonZeroExit(p.Executable, result.ExitCode, runErr)
	}
	return result, fmt.Errorf("start engine: %w", runErr)
}

func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		merged = append(merged, entry)
	}
	for key, value := range overrides {
		merged = append(merged, fmt.Sprintf("%s=%s", key, value))
	}
	return merged
}

func exitCodeFromError(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return 124
	}
	return 1
}
