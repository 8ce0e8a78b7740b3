// Package namelist writes the grouped key/value configuration files read by
// the naca456 engine:
//
//	&NACA
//	  profile = '63',
//	  toc = 0.15,
//	/
package namelist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultGroup is the group name the engine reads.
const DefaultGroup = "NACA"

// Encode writes ps as a namelist group to w.
func Encode(w io.Writer, group string, ps *ParameterSet) error {
	if group == "" {
		group = DefaultGroup
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "&%s\n", group)
	for _, p := range ps.Params() {
		fmt.Fprintf(bw, "  %s = %s,\n", p.Key, p.Value.Format())
	}
	bw.WriteString("/\n")
	return bw.Flush()
}

// Marshal returns the namelist text for ps.
func Marshal(group string, ps *ParameterSet) []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, group, ps)
	return buf.Bytes()
}

// WriteFile writes ps to path, replacing any existing file.
func WriteFile(path, group string, ps *ParameterSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure namelist dir: %w", err)
	}
	if err := os.WriteFile(path, Marshal(group, ps), 0o644); err != nil {
		return fmt.Errorf("write namelist: %w", err)
	}
	return nil
}
