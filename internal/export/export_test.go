package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestSplice(t *testing.T) {
	x := []float64{0, 0.5, 1}
	yu := []float64{0, 0.06, 0.001}
	yl := []float64{0, -0.04, -0.001}

	c, err := Splice(x, yu, yl)
	if err != nil {
		t.Fatalf("Splice() error: %v", err)
	}
	want := Contour{
		X: []float64{1, 0.5, 0, 0.5, 1},
		Y: []float64{0.001, 0.06, 0, -0.04, -0.001},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("contour mismatch (-want +got):\n%s", diff)
	}
}

func TestSpliceLength(t *testing.T) {
	for _, n := range []int{1, 2, 17, 101} {
		x := make([]float64, n)
		for i := range x {
			x[i] = float64(i) / float64(n)
		}
		c, err := Splice(x, make([]float64, n), make([]float64, n))
		if err != nil {
			t.Fatalf("n=%d: Splice() error: %v", n, err)
		}
		if c.Len() != 2*n-1 {
			t.Fatalf("n=%d: Len() = %d, want %d", n, c.Len(), 2*n-1)
		}
	}
}

func TestSpliceRejectsMismatch(t *testing.T) {
	if _, err := Splice([]float64{0, 1}, []float64{0}, []float64{0, 1}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if _, err := Splice(nil, nil, nil); err == nil {
		t.Fatalf("expected empty input error")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	c := Contour{X: []float64{1, 0, 1}, Y: []float64{0.00126, 0, -0.00126}}
	if err := Encode(&buf, "NACA 0012", c); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "NACA 0012\n" +
		"1.000000  0.001260\n" +
		"0.000000  0.000000\n" +
		"1.000000  -0.001260\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "xfoil", "naca0012.dat")
	long := Contour{X: []float64{1, 0.5, 0, 0.5, 1}, Y: []float64{0, 0.1, 0, -0.1, 0}}
	if err := WriteFile(path, "first", long); err != nil {
		t.Fatalf("first write: %v", err)
	}
	short := Contour{X: []float64{1, 0, 1}, Y: []float64{0, 0, 0}}
	if err := WriteFile(path, "second", short); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 4 || lines[0] != "second" {
		t.Fatalf("expected fully replaced file, got %q", data)
	}
}

func TestWriteFileKeepsSixDecimals(t *testing.T) {
	c := Contour{
		X: []float64{1, 0.3333333333, 0, 0.3333333333, 1},
		Y: []float64{0.00126, 0.0600184, 0, -0.0600184, -0.00126},
	}
	path := filepath.Join(t.TempDir(), "naca0012.dat")
	if err := WriteFile(path, "NACA 0012", c); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if lines[0] != "NACA 0012" {
		t.Fatalf("label line = %q", lines[0])
	}
	var got Contour
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			t.Fatalf("line %q: expected 2 fields", line)
		}
		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			t.Fatalf("line %q: %v %v", line, errX, errY)
		}
		got.X = append(got.X, x)
		got.Y = append(got.Y, y)
	}
	if diff := cmp.Diff(c, got, cmpopts.EquateApprox(0, 5e-7)); diff != "" {
		t.Fatalf("read back mismatch (-want +got):\n%s", diff)
	}
}
