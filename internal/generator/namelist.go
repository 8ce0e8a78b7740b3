package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"

	"nacagen/internal/audit"
	"nacagen/internal/namelist"
)

// writeNamelist writes ps to path. Replacing an existing namelist with
// different content is allowed but recorded with a unified diff, since it
// usually means two parameter sets share a stem.
func (g *Generator) writeNamelist(log *zap.Logger, stem, path string, ps *namelist.ParameterSet) error {
	prev, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read previous namelist: %w", err)
	}

	if err := namelist.WriteFile(path, g.group, ps); err != nil {
		return err
	}
	if !existed {
		return nil
	}

	next := namelist.Marshal(g.group, ps)
	if bytes.Equal(prev, next) {
		return nil
	}
	diff, err := namelistDiff(filepath.Base(path), prev, next)
	if err != nil {
		return err
	}
	log.Warn("namelist overwritten with different parameters", zap.String("path", path))
	g.record(log, audit.EventNamelistOverwritten, stem, map[string]any{
		"path": path,
		"diff": diff,
	})
	return nil
}

func namelistDiff(name string, prev, next []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(prev)),
		B:        difflib.SplitLines(string(next)),
		FromFile: filepath.Join("previous", name),
		ToFile:   filepath.Join("current", name),
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}
	return text, nil
}
