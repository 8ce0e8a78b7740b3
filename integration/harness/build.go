package harness

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// Version is stamped into the test binary through -ldflags.
const Version = "integration"

// BinaryEnv names a prebuilt nacagen binary to test instead of building one.
const BinaryEnv = "NACAGEN_TEST_BINARY"

const modulePath = "nacagen"

var (
	rootOnce sync.Once
	rootDir  string
	rootErr  error

	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// RepoRoot returns the directory holding the nacagen go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	rootOnce.Do(func() {
		_, file, _, ok := runtime.Caller(0)
		if !ok {
			rootErr = fmt.Errorf("runtime.Caller failed")
			return
		}
		rootDir, rootErr = findModuleRoot(filepath.Dir(file), modulePath)
	})
	if rootErr != nil {
		t.Fatalf("resolve repo root: %v", rootErr)
	}
	return rootDir
}

// findModuleRoot walks up from dir to the go.mod declaring module.
func findModuleRoot(dir, module string) (string, error) {
	for {
		gomod := filepath.Join(dir, "go.mod")
		if name, err := moduleName(gomod); err == nil && name == module {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod for module %s above the harness", module)
		}
		dir = parent
	}
}

func moduleName(gomod string) (string, error) {
	f, err := os.Open(gomod)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "module "); ok {
			return strings.Trim(strings.TrimSpace(rest), `"`), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%s has no module line", gomod)
}

// BuildBinary returns the nacagen binary under test. It builds ./cmd/nacagen
// once per test run unless BinaryEnv points at an existing binary.
func BuildBinary(t *testing.T) string {
	t.Helper()
	if prebuilt := os.Getenv(BinaryEnv); prebuilt != "" {
		if _, err := os.Stat(prebuilt); err != nil {
			t.Fatalf("%s=%s: %v", BinaryEnv, prebuilt, err)
		}
		return prebuilt
	}

	root := RepoRoot(t)
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "nacagen-bin-")
		if err != nil {
			buildErr = fmt.Errorf("create temp dir: %w", err)
			return
		}
		out := filepath.Join(dir, "nacagen")
		cmd := exec.Command("go", "build", "-trimpath", "-ldflags", "-X main.version="+Version, "-o", out, "./cmd/nacagen")
		cmd.Dir = root
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			buildErr = fmt.Errorf("go build ./cmd/nacagen: %w\n%s", err, stderr.String())
			return
		}
		binPath = out
	})
	if buildErr != nil {
		t.Fatalf("build nacagen binary: %v", buildErr)
	}
	return binPath
}
