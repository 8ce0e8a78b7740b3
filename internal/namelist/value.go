package namelist

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindInteger
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	default:
		return "unknown"
	}
}

// Value is a namelist scalar. The zero Value is the empty string.
type Value struct {
	kind Kind
	s    string
	b    bool
	i    int64
	f    float64
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Real returns a real Value.
func Real(f float64) Value { return Value{kind: KindReal, f: f} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Format renders v the way the engine's namelist reader expects it.
func (v Value) Format() string {
	switch v.kind {
	case KindBoolean:
		if v.b {
			return ".TRUE."
		}
		return ".FALSE."
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindReal:
		return formatReal(v.f)
	default:
		if strings.HasPrefix(v.s, "'") || strings.HasPrefix(v.s, `"`) {
			return v.s
		}
		return "'" + v.s + "'"
	}
}

// Text returns the unquoted textual content of v. Strings come back with
// one layer of surrounding quotes removed.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return unquote(v.s)
	case KindBoolean:
		return strconv.FormatBool(v.b)
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	default:
		return formatReal(v.f)
	}
}

// Float converts v to a float64. Strings are parsed after unquoting;
// booleans never convert.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindReal:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(unquote(v.s)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports whether v and o hold the same variant and value.
func (v Value) Equal(o Value) bool {
	return v == o
}

// formatReal renders f with the shortest round-trip digits. Magnitudes in
// [1e-4, 1e16) use positional notation with at least one decimal, others
// use an exponent, so 1 renders as 1.0 and 1e6 as 1000000.0.
func formatReal(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '\'' || first == '"') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
