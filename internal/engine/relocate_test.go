package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nacagen/internal/foilerr"
)

func TestRelocateMovesPresentArtifacts(t *testing.T) {
	root := t.TempDir()
	for name, body := range map[string]string{ReportFile: "report", DebugFile: "debug"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	// Stale output from an earlier run must be replaced.
	if err := os.MkdirAll(filepath.Join(root, "out"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "out", "naca0012.out"), []byte("stale"), 0o644); err != nil {
		t.Fatalf("write stale: %v", err)
	}

	moved, err := Relocate(root, "naca0012", []Artifact{
		{Name: ReportFile, DestDir: filepath.Join(root, "out")},
		{Name: PlotFile, DestDir: filepath.Join(root, "gnu")},
		{Name: DebugFile, DestDir: filepath.Join(root, "dbg")},
	})
	if err != nil {
		t.Fatalf("Relocate() error: %v", err)
	}

	want := []Relocation{
		{Source: filepath.Join(root, ReportFile), Dest: filepath.Join(root, "out", "naca0012.out")},
		{Source: filepath.Join(root, DebugFile), Dest: filepath.Join(root, "dbg", "naca0012.dbg")},
	}
	if diff := cmp.Diff(want, moved); diff != "" {
		t.Fatalf("relocations mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(root, "out", "naca0012.out"))
	if err != nil || string(data) != "report" {
		t.Fatalf("relocated report = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(root, ReportFile)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source report to be gone, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "gnu", "naca0012.gnu")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no plot artifact, got %v", err)
	}
}

func TestMockRun(t *testing.T) {
	dir := t.TempDir()
	m := &Mock{Report: "report body", Plot: "plot body"}
	if _, err := m.Run(context.Background(), RunConfig{InputPath: "a.nml", WorkDir: dir}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ReportFile)); err != nil {
		t.Fatalf("expected report: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, DebugFile)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no debug file, got %v", err)
	}
	if diff := cmp.Diff([]string{"a.nml"}, m.Inputs); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}

	failing := &Mock{ExitCode: 2}
	if _, err := failing.Run(context.Background(), RunConfig{InputPath: "a.nml", WorkDir: dir}); !errors.Is(err, foilerr.ErrNonZeroExit) {
		t.Fatalf("expected ErrNonZeroExit, got %v", err)
	}
}
