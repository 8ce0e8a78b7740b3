package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace defines the directory layout of a generation root. The engine
// runs with Root as its working directory; every artifact of one run is
// keyed by the same stem across the subdirectories.
type Workspace struct {
	Root       string
	InputDir   string
	ReportDir  string
	PlotDir    string
	DebugDir   string
	ExportDir  string
	LedgerPath string
}

// Resolve expands and validates the workspace root, ensuring it exists.
func Resolve(root string) (*Workspace, error) {
	abs, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root is not a directory: %s", abs)
	}
	return newWorkspace(abs), nil
}

// New returns the layout under root without touching the filesystem.
func New(root string) (*Workspace, error) {
	abs, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}
	return newWorkspace(abs), nil
}

// EnsureDirs creates the root and every artifact directory.
func (w *Workspace) EnsureDirs() error {
	if w == nil {
		return fmt.Errorf("workspace is nil")
	}
	dirs := []string{
		w.Root,
		w.InputDir,
		w.ReportDir,
		w.PlotDir,
		w.DebugDir,
		w.ExportDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure %s: %w", dir, err)
		}
	}
	return nil
}

// InputPath returns the namelist path for stem.
func (w *Workspace) InputPath(stem string) string {
	return filepath.Join(w.InputDir, stem+".nml")
}

// ReportPath returns the relocated report path for stem.
func (w *Workspace) ReportPath(stem string) string {
	return filepath.Join(w.ReportDir, stem+".out")
}

// PlotPath returns the relocated plot data path for stem.
func (w *Workspace) PlotPath(stem string) string {
	return filepath.Join(w.PlotDir, stem+".gnu")
}

// DebugPath returns the relocated debug log path for stem.
func (w *Workspace) DebugPath(stem string) string {
	return filepath.Join(w.DebugDir, stem+".dbg")
}

// TranscriptPath returns where the engine's console output is kept for stem.
func (w *Workspace) TranscriptPath(stem string) string {
	return filepath.Join(w.DebugDir, stem+".log")
}

// ExportPath returns the exported point file path for stem.
func (w *Workspace) ExportPath(stem string) string {
	return filepath.Join(w.ExportDir, stem+".dat")
}

func newWorkspace(root string) *Workspace {
	return &Workspace{
		Root:       root,
		InputDir:   filepath.Join(root, "nml"),
		ReportDir:  filepath.Join(root, "out"),
		PlotDir:    filepath.Join(root, "gnu"),
		DebugDir:   filepath.Join(root, "dbg"),
		ExportDir:  filepath.Join(root, "out", "xfoil"),
		LedgerPath: filepath.Join(root, "ledger.sqlite"),
	}
}

func resolveRoot(root string) (string, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return "", fmt.Errorf("workspace root is required")
	}
	expanded, err := expandHome(root)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve workspace: %w", err)
	}
	return abs, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}
	return "", fmt.Errorf("unsupported home expansion: %s", path)
}
