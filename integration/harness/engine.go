package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// EngineBehavior describes what the stand-in naca456 does when run.
type EngineBehavior struct {
	// Report is copied to naca.out in the working directory.
	Report string
	// Plot, when set, is written to naca.gnu.
	Plot string
	// ExitCode is returned after the files are written.
	ExitCode int
	// Sleep delays the exit, in seconds.
	Sleep int
}

// StandInEngine writes a shell script that reads the namelist path from
// stdin like naca456 does and produces the configured artifacts.
func StandInEngine(t *testing.T, b EngineBehavior) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stand-in engine requires a unix shell")
	}

	script := "#!/bin/sh\nread nml\ntest -f \"$nml\" || { echo \"no namelist at $nml\" >&2; exit 97; }\n"
	script += "echo \"naca456 stand-in reading $nml\"\n"
	if b.Sleep > 0 {
		script += fmt.Sprintf("sleep %d\n", b.Sleep)
	}
	if b.Report != "" {
		script += fmt.Sprintf("cp %q naca.out\n", b.Report)
	}
	if b.Plot != "" {
		script += fmt.Sprintf("printf '%%s\\n' %q > naca.gnu\n", b.Plot)
	}
	script += fmt.Sprintf("exit %d\n", b.ExitCode)

	path := filepath.Join(t.TempDir(), "naca456")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stand-in engine: %v", err)
	}
	return path
}

// Fixture returns the path of a file under integration/fixtures.
func Fixture(t *testing.T, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{RepoRoot(t), "integration", "fixtures"}, parts...)...)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("fixture %s: %v", path, err)
	}
	return path
}
