// Package designation derives canonical NACA designations and the
// filesystem stems that key every artifact of a generation run.
package designation

import (
	"fmt"
	"math"
	"strings"

	"nacagen/internal/foilerr"
	"nacagen/internal/namelist"
)

// Prefix starts every derived designation.
const Prefix = "NACA "

// Params holds the fields a designation is built from. Zero values stand
// for missing fields.
type Params struct {
	Profile string
	CMax    float64
	XMaxC   float64
	TOC     float64
	CL      float64
}

// Derive returns the canonical designation for p. Digit groups are rounded
// half-to-even.
func Derive(p Params) (string, error) {
	prof := strings.ToUpper(strings.Trim(strings.TrimSpace(p.Profile), `'"`))
	td := round(p.TOC * 100)

	switch {
	case prof == "4":
		m := round(p.CMax * 100)
		pos := round(p.XMaxC * 10)
		return fmt.Sprintf("%s%d%d%02d", Prefix, m, pos, td), nil
	case prof == "5":
		x := round(p.CL * 10 / 1.5)
		yz := round(p.XMaxC * 20)
		return fmt.Sprintf("%s%d%02d%02d", Prefix, x, yz, td), nil
	case strings.HasPrefix(prof, "6"), strings.HasPrefix(prof, "7"), strings.HasPrefix(prof, "8"):
		return fmt.Sprintf("%s%s%d%02d", Prefix, prof, round(p.CL*10), td), nil
	case prof == "16":
		return fmt.Sprintf("%s16-%d%02d", Prefix, round(p.CL*10), td), nil
	}
	return "", foilerr.UnsupportedFamily(prof)
}

// FromParameters reads profile, cmax, xmaxc, toc and cl from ps and derives
// the designation.
func FromParameters(ps *namelist.ParameterSet) (string, error) {
	var p Params
	if v, ok := ps.Get("profile"); ok {
		p.Profile = v.Text()
	}
	fields := []struct {
		key string
		dst *float64
	}{
		{"cmax", &p.CMax},
		{"xmaxc", &p.XMaxC},
		{"toc", &p.TOC},
		{"cl", &p.CL},
	}
	for _, f := range fields {
		v, ok := ps.Get(f.key)
		if !ok {
			continue
		}
		num, ok := v.Float()
		if !ok {
			return "", fmt.Errorf("designation field %s: %s value %q is not numeric", f.key, v.Kind(), v.Text())
		}
		*f.dst = num
	}
	return Derive(p)
}

// Stem lower-cases name and drops every character outside [a-z0-9].
// Names differing only in case or punctuation share a stem.
func Stem(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func round(f float64) int {
	return int(math.RoundToEven(f))
}
