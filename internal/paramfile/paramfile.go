// Package paramfile reads namelist parameter sets from YAML, JSON and HCL
// files. Key order in the file becomes key order in the written namelist.
package paramfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nacagen/internal/namelist"
)

// Load reads the parameter set stored at path. The extension selects the
// format: .yaml, .yml and .json are read as YAML, .hcl as HCL.
func Load(path string) (*namelist.ParameterSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameter file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		ps, err := DecodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return ps, nil
	case ".hcl":
		return DecodeHCL(data, path)
	default:
		return nil, fmt.Errorf("parameter file %s: unsupported extension %q", path, filepath.Ext(path))
	}
}

// ParseAssignment parses a "key=value" pair. The value is typed with YAML
// scalar rules, so 3 is an integer, 0.15 a real and true a boolean. Quote
// the value ('4') or use ParseStringAssignment for fields the engine reads
// as strings, such as profile, camber and name.
func ParseAssignment(s string) (string, namelist.Value, error) {
	key, raw, err := splitAssignment(s)
	if err != nil {
		return "", namelist.Value{}, err
	}
	v, err := ParseScalar(raw)
	if err != nil {
		return "", namelist.Value{}, fmt.Errorf("parameter %s: %w", key, err)
	}
	return key, v, nil
}

// ParseStringAssignment parses a "key=value" pair whose value is always a
// string, whatever it looks like.
func ParseStringAssignment(s string) (string, namelist.Value, error) {
	key, raw, err := splitAssignment(s)
	if err != nil {
		return "", namelist.Value{}, err
	}
	return key, namelist.String(strings.TrimSpace(raw)), nil
}

func splitAssignment(s string) (string, string, error) {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("parameter %q: expected key=value", s)
	}
	return key, raw, nil
}
