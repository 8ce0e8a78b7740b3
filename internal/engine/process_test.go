package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"nacagen/internal/foilerr"
)

// writeScript installs a /bin/sh stand-in for the engine.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stand-in requires a unix shell")
	}
	path := filepath.Join(t.TempDir(), "naca456")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestNewProcessRejectsMissingExecutable(t *testing.T) {
	_, err := NewProcess(filepath.Join(t.TempDir(), "naca456"), nil)
	if !errors.Is(err, foilerr.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewProcessRejectsUnusableFiles(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(plain, []byte("data"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	for _, path := range []string{"", dir, plain} {
		if _, err := NewProcess(path, nil); !errors.Is(err, foilerr.ErrConfiguration) {
			t.Errorf("path %q: expected ErrConfiguration, got %v", path, err)
		}
	}
}

func TestProcessRunFeedsInputPath(t *testing.T) {
	exe := writeScript(t, `read nml
printf '%s\n' "$nml" > received.txt
printf 'report\n' > naca.out
echo "engine says hi"
`)
	proc, err := NewProcess(exe, nil)
	if err != nil {
		t.Fatalf("NewProcess() error: %v", err)
	}

	workDir := t.TempDir()
	transcript := filepath.Join(t.TempDir(), "dbg", "naca0012.log")
	result, err := proc.Run(context.Background(), RunConfig{
		InputPath:      "/work/nml/naca0012.nml",
		WorkDir:        workDir,
		TranscriptPath: transcript,
		Timeout:        10 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", result.ExitCode)
	}

	received, err := os.ReadFile(filepath.Join(workDir, "received.txt"))
	if err != nil {
		t.Fatalf("read received input: %v", err)
	}
	if strings.TrimSpace(string(received)) != "/work/nml/naca0012.nml" {
		t.Fatalf("engine received %q", received)
	}
	if _, err := os.Stat(filepath.Join(workDir, ReportFile)); err != nil {
		t.Fatalf("expected report in workdir: %v", err)
	}
	log, err := os.ReadFile(transcript)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if !strings.Contains(string(log), "engine says hi") {
		t.Fatalf("transcript missing engine output: %q", log)
	}
}

func TestProcessRunNonZeroExit(t *testing.T) {
	exe := writeScript(t, "read nml\nexit 3\n")
	proc, err := NewProcess(exe, nil)
	if err != nil {
		t.Fatalf("NewProcess() error: %v", err)
	}
	result, err := proc.Run(context.Background(), RunConfig{
		InputPath: "in.nml",
		WorkDir:   t.TempDir(),
		Timeout:   10 * time.Second,
	})
	if !errors.Is(err, foilerr.ErrNonZeroExit) {
		t.Fatalf("expected ErrNonZeroExit, got %v", err)
	}
	var fe *foilerr.Error
	if !errors.As(err, &fe) || fe.ExitCode != 3 {
		t.Fatalf("expected exit code 3 in error, got %v", err)
	}
	if result == nil || result.ExitCode != 3 {
		t.Fatalf("expected result exit code 3, got %+v", result)
	}
}

func TestProcessRunTimeout(t *testing.T) {
	exe := writeScript(t, "sleep 30\n")
	proc, err := NewProcess(exe, nil)
	if err != nil {
		t.Fatalf("NewProcess() error: %v", err)
	}

	started := time.Now()
	_, err = proc.Run(context.Background(), RunConfig{
		InputPath: "in.nml",
		WorkDir:   t.TempDir(),
		Timeout:   200 * time.Millisecond,
	})
	if !errors.Is(err, foilerr.ErrExecutionTimeout) {
		t.Fatalf("expected ErrExecutionTimeout, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 10*time.Second {
		t.Fatalf("engine was not terminated promptly (%s)", elapsed)
	}
}

func TestProcessRunRequiresWorkDir(t *testing.T) {
	exe := writeScript(t, "exit 0\n")
	proc, err := NewProcess(exe, nil)
	if err != nil {
		t.Fatalf("NewProcess() error: %v", err)
	}
	if _, err := proc.Run(context.Background(), RunConfig{InputPath: "in.nml"}); err == nil {
		t.Fatalf("expected error without workdir")
	}
	missing := filepath.Join(t.TempDir(), "nope")
	if _, err := proc.Run(context.Background(), RunConfig{InputPath: "in.nml", WorkDir: missing}); err == nil {
		t.Fatalf("expected error for missing workdir")
	}
}

func TestMergeEnv(t *testing.T) {
	merged := mergeEnv([]string{"A=1", "B=2"}, map[string]string{"B": "3", "C": "4"})
	got := strings.Join(merged, ",")
	for _, want := range []string{"A=1", "B=3", "C=4"} {
		if !strings.Contains(got, want) {
			t.Errorf("merged env %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "B=2") {
		t.Errorf("merged env %q kept overridden B=2", got)
	}
}
