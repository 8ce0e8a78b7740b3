package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// Artifact names an engine output file and the directory it is moved to.
type Artifact struct {
	Name    string
	DestDir string
}

// Relocation records one moved file.
type Relocation struct {
	Source string
	Dest   string
}

// Relocate moves each artifact present in workDir to DestDir/<stem><ext>.
// Artifacts the engine did not produce are skipped. Existing destinations
// are replaced.
func Relocate(workDir, stem string, artifacts []Artifact) ([]Relocation, error) {
	moved := make([]Relocation, 0, len(artifacts))
	for _, a := range artifacts {
		src := filepath.Join(workDir, a.Name)
		if _, err := os.Stat(src); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return moved, fmt.Errorf("stat %s: %w", a.Name, err)
		}
		if err := os.MkdirAll(a.DestDir, 0o755); err != nil {
			return moved, fmt.Errorf("ensure %s: %w", a.DestDir, err)
		}
		dest := filepath.Join(a.DestDir, stem+filepath.Ext(a.Name))
		if err := moveFile(src, dest); err != nil {
			return moved, fmt.Errorf("relocate %s: %w", a.Name, err)
		}
		moved = append(moved, Relocation{Source: src, Dest: dest})
	}
	return moved, nil
}

func moveFile(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
