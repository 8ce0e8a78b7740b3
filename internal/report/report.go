// Package report reads the coordinate tables out of a naca456 output report.
//
// Two table layouts exist. Cambered sections are listed after an
// "INTERPOLATED COORDINATES" marker with independent upper and lower
// surfaces; symmetric sections carry a single surface under a header that
// mentions dy/dx, and the lower surface is its mirror image.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"nacagen/internal/foilerr"
)

// Schema identifies the table layout found in a report.
type Schema int

const (
	Symmetric Schema = iota
	Cambered
)

func (s Schema) String() string {
	if s == Cambered {
		return "cambered"
	}
	return "symmetric"
}

const (
	camberedMarker = "INTERPOLATED COORDINATES"
	camberedHeader = "yupper"
	symmetricTag   = "dy/dx"
	endSentinel    = "end"
)

// Coordinates holds parallel ordinate columns sorted by ascending X.
type Coordinates struct {
	Schema Schema
	X      []float64
	YUpper []float64
	YLower []float64
}

// Len returns the number of points.
func (c *Coordinates) Len() int { return len(c.X) }

type state int

const (
	seekMarker state = iota
	seekHeader
	scanRows
	done
)

// parser walks a report line by line:
// seekMarker -> seekHeader -> scanRows -> done.
type parser struct {
	path   string
	state  state
	schema Schema
	lines  []string
	coords Coordinates
}

// ParseFile parses the report at path.
func ParseFile(path string) (*Coordinates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return parse(f, path)
}

// Parse parses a report from r.
func Parse(r io.Reader) (*Coordinates, error) {
	return parse(r, "")
}

func parse(r io.Reader, path string) (*Coordinates, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	p := &parser{path: path, lines: lines}
	if err := p.run(); err != nil {
		return nil, err
	}
	return &p.coords, nil
}

func (p *parser) run() error {
	i := 0
	for p.state != done {
		switch p.state {
		case seekMarker:
			i = p.seekMarker()
			p.coords.Schema = p.schema
			p.state = seekHeader
		case seekHeader:
			if i >= len(p.lines) {
				return p.missingHeader()
			}
			if p.isHeader(p.lines[i]) {
				p.state = scanRows
			}
			i++
		case scanRows:
			if i >= len(p.lines) || isTerminator(p.lines[i]) {
				p.state = done
				continue
			}
			if err := p.row(i+1, p.lines[i]); err != nil {
				return err
			}
			i++
		}
	}

	if len(p.coords.X) == 0 {
		return foilerr.MalformedRow(p.path, 0, "coordinate table has no rows", nil)
	}
	if p.schema == Symmetric {
		p.coords.YLower = make([]float64, len(p.coords.YUpper))
		for j, y := range p.coords.YUpper {
			p.coords.YLower[j] = -y
		}
	}
	return nil
}

// seekMarker picks the schema and returns the line index the header search
// starts from: just past the marker, or the top of the report without one.
func (p *parser) seekMarker() int {
	for i, line := range p.lines {
		if strings.Contains(line, camberedMarker) {
			p.schema = Cambered
			return i + 1
		}
	}
	p.schema = Symmetric
	return 0
}

func (p *parser) missingHeader() error {
	if p.schema == Cambered {
		return foilerr.MissingHeader(p.path, "no x/yupper header after "+camberedMarker)
	}
	return foilerr.MissingHeader(p.path, "no "+camberedMarker+" marker and no x/dy/dx header")
}

func (p *parser) isHeader(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if !strings.HasPrefix(lower, "x") {
		return false
	}
	if p.schema == Cambered {
		return strings.Contains(lower, camberedHeader)
	}
	return strings.Contains(lower, symmetricTag)
}

func isTerminator(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(strings.ToLower(trimmed), endSentinel)
}

// row parses one data line: a leading label token followed by x, y and,
// for cambered tables, the lower ordinate.
func (p *parser) row(lineNo int, line string) error {
	want := 3
	if p.schema == Cambered {
		want = 4
	}
	fields := strings.Fields(line)
	if len(fields) < want {
		return foilerr.MalformedRow(p.path, lineNo, fmt.Sprintf("expected at least %d fields, got %d", want, len(fields)), nil)
	}

	values := make([]float64, want-1)
	for j := range values {
		tok := strings.Trim(fields[j+1], " *")
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return foilerr.MalformedRow(p.path, lineNo, fmt.Sprintf("field %d %q is not numeric", j+2, fields[j+1]), err)
		}
		values[j] = v
	}

	x := values[0]
	if n := len(p.coords.X); n > 0 && x <= p.coords.X[n-1] {
		return foilerr.MalformedRow(p.path, lineNo, fmt.Sprintf("x=%g does not ascend past %g", x, p.coords.X[n-1]), nil)
	}
	p.coords.X = append(p.coords.X, x)
	p.coords.YUpper = append(p.coords.YUpper, values[1])
	if p.schema == Cambered {
		p.coords.YLower = append(p.coords.YLower, values[2])
	}
	return nil
}
