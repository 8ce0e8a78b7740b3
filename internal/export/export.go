// Package export writes airfoil coordinates as a labeled closed contour in
// the point format read by XFOIL.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Contour is a closed point sequence running trailing edge -> leading edge
// -> trailing edge.
type Contour struct {
	X []float64
	Y []float64
}

// Len returns the number of points.
func (c Contour) Len() int { return len(c.X) }

// Splice joins the reversed upper surface with the lower surface minus its
// leading-edge point, giving 2N-1 points for N input stations.
func Splice(x, yUpper, yLower []float64) (Contour, error) {
	n := len(x)
	if len(yUpper) != n || len(yLower) != n {
		return Contour{}, fmt.Errorf("splice contour: column lengths differ (x=%d upper=%d lower=%d)", n, len(yUpper), len(yLower))
	}
	if n == 0 {
		return Contour{}, fmt.Errorf("splice contour: no points")
	}

	c := Contour{
		X: make([]float64, 0, 2*n-1),
		Y: make([]float64, 0, 2*n-1),
	}
	for i := n - 1; i >= 0; i-- {
		c.X = append(c.X, x[i])
		c.Y = append(c.Y, yUpper[i])
	}
	c.X = append(c.X, x[1:]...)
	c.Y = append(c.Y, yLower[1:]...)
	return c, nil
}

// Encode writes label on the first line followed by one "x  y" line per
// point with six decimals.
func Encode(w io.Writer, label string, c Contour) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", label)
	for i := range c.X {
		fmt.Fprintf(bw, "%.6f  %.6f\n", c.X[i], c.Y[i])
	}
	return bw.Flush()
}

// WriteFile writes the contour to path, replacing any existing file.
func WriteFile(path, label string, c Contour) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure export dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open export: %w", err)
	}
	if err := Encode(f, label, c); err != nil {
		_ = f.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	return nil
}
