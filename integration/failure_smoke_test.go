package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nacagen/integration/harness"
)

func TestGenerateEngineFailureSmoke(t *testing.T) {
	binPath := harness.BuildBinary(t)
	runDir := t.TempDir()
	root := filepath.Join(t.TempDir(), "root")
	engine := harness.StandInEngine(t, harness.EngineBehavior{
		Report:   harness.Fixture(t, "reports", "symmetric.out"),
		ExitCode: 3,
	})

	args := []string{"generate", "--root", root, "--exe", engine, "--ledger", "-f", harness.Fixture(t, "params", "naca2412.yaml")}
	_, stderr, code := harness.Run(t, binPath, runDir, args)
	if code == 0 {
		t.Fatalf("expected generate to fail")
	}
	if !strings.Contains(stderr, "non_zero_exit") || !strings.Contains(stderr, "exit code 3") {
		t.Fatalf("expected non_zero_exit with code 3 in stderr:\n%s", stderr)
	}

	if _, err := os.Stat(filepath.Join(root, "nml", "naca2412.nml")); err != nil {
		t.Fatalf("namelist should be kept after engine failure: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "naca2412.out")); !os.IsNotExist(err) {
		t.Fatalf("report should not be relocated after engine failure (err=%v)", err)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "xfoil", "naca2412.dat")); !os.IsNotExist(err) {
		t.Fatalf("export should not exist after engine failure (err=%v)", err)
	}
	requireLedgerEvents(t, filepath.Join(root, "ledger.sqlite"), "naca2412", map[string]int{
		"generation_started": 1,
		"generation_failed":  1,
	})
}

func TestGenerateTimeoutSmoke(t *testing.T) {
	binPath := harness.BuildBinary(t)
	runDir := t.TempDir()
	root := filepath.Join(t.TempDir(), "root")
	engine := harness.StandInEngine(t, harness.EngineBehavior{Sleep: 30})

	args := []string{"generate", "--root", root, "--exe", engine, "--timeout", "300ms", "-f", harness.Fixture(t, "params", "naca2412.yaml")}
	_, stderr, code := harness.Run(t, binPath, runDir, args)
	if code == 0 {
		t.Fatalf("expected generate to time out")
	}
	if !strings.Contains(stderr, "execution_timeout") {
		t.Fatalf("expected execution_timeout in stderr:\n%s", stderr)
	}
}

func TestGenerateMissingExecutableSmoke(t *testing.T) {
	binPath := harness.BuildBinary(t)
	runDir := t.TempDir()
	root := filepath.Join(t.TempDir(), "root")

	args := []string{"generate", "--root", root, "--exe", filepath.Join(runDir, "missing-naca456"), "--set-string", "profile=4", "--set", "toc=0.12"}
	_, stderr, code := harness.Run(t, binPath, runDir, args)
	if code == 0 {
		t.Fatalf("expected generate to fail")
	}
	if !strings.Contains(stderr, "configuration") {
		t.Fatalf("expected configuration error in stderr:\n%s", stderr)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("root should not be created (err=%v)", err)
	}
}
