// Package config loads nacagen settings from a YAML file:
//
//	root: ~/airfoils
//	executable: /opt/pdas/naca456
//	timeout: 30s
//	log_level: info
//	ledger: true
//
// Relative root and executable paths are taken relative to the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the resolved configuration of one nacagen invocation.
type Settings struct {
	Root       string            `yaml:"root"`
	Executable string            `yaml:"executable"`
	Timeout    Duration          `yaml:"timeout"`
	Group      string            `yaml:"group"`
	LogLevel   string            `yaml:"log_level"`
	LogFormat  string            `yaml:"log_format"`
	Ledger     bool              `yaml:"ledger"`
	Env        map[string]string `yaml:"env"`
}

// Duration accepts Go duration strings ("30s") or whole seconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	if n.ShortTag() == "!!int" {
		var secs int64
		if err := n.Decode(&secs); err != nil {
			return err
		}
		d.Duration = time.Duration(secs) * time.Second
		return nil
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %d: timeout: %w", n.Line, err)
	}
	d.Duration = parsed
	return nil
}

// Load reads settings from path. Unknown keys are rejected.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	var s Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	base := filepath.Dir(path)
	s.Root = relativeTo(base, s.Root)
	s.Executable = relativeTo(base, s.Executable)
	return s, nil
}

// Validate checks the settings every generation needs.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Root) == "" {
		return errors.New("root is required (set --root or root in the config file)")
	}
	if strings.TrimSpace(s.Executable) == "" {
		return errors.New("executable is required (set --exe or executable in the config file)")
	}
	if s.Timeout.Duration < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", s.Timeout)
	}
	return nil
}

func relativeTo(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || strings.HasPrefix(path, "~") {
		return path
	}
	return filepath.Join(base, path)
}
