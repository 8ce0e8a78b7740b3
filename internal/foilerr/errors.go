package foilerr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind categorizes a pipeline failure.
type Kind string

const (
	KindConfiguration     Kind = "configuration"
	KindUnsupportedFamily Kind = "unsupported_family"
	KindExecutionTimeout  Kind = "execution_timeout"
	KindNonZeroExit       Kind = "non_zero_exit"
	KindMissingHeader     Kind = "missing_header"
	KindMalformedRow      Kind = "malformed_row"
)

// Sentinels for errors.Is.
var (
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrUnsupportedFamily = &Error{Kind: KindUnsupportedFamily}
	ErrExecutionTimeout  = &Error{Kind: KindExecutionTimeout}
	ErrNonZeroExit       = &Error{Kind: KindNonZeroExit}
	ErrMissingHeader     = &Error{Kind: KindMissingHeader}
	ErrMalformedRow      = &Error{Kind: KindMalformedRow}
)

// Error is the structured error returned by the pipeline packages.
type Error struct {
	Cause    error
	Kind     Kind
	Op       string
	Path     string
	Detail   string
	Line     int
	ExitCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')

	if e.Op != "" {
		b.WriteByte(' ')
		b.WriteString(e.Op)
	}
	if e.Path != "" {
		b.WriteByte(' ')
		b.WriteString(e.Path)
		if e.Line > 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(e.Line))
		}
	} else if e.Line > 0 {
		b.WriteString(" line ")
		b.WriteString(strconv.Itoa(e.Line))
	}
	if e.Kind == KindNonZeroExit {
		b.WriteString(" (exit code ")
		b.WriteString(strconv.Itoa(e.ExitCode))
		b.WriteByte(')')
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Configuration reports an unusable engine setup.
func Configuration(path string, detail string, cause error) *Error {
	return &Error{Kind: KindConfiguration, Op: "engine", Path: path, Detail: detail, Cause: cause}
}

// UnsupportedFamily reports a designation request for an unknown family tag.
func UnsupportedFamily(tag string) *Error {
	return &Error{Kind: KindUnsupportedFamily, Op: "designation", Detail: fmt.Sprintf("unsupported profile family %q", tag)}
}

// ExecutionTimeout reports an engine run that exceeded its deadline.
func ExecutionTimeout(path string, limit fmt.Stringer, cause error) *Error {
	return &Error{Kind: KindExecutionTimeout, Op: "engine", Path: path, Detail: "no exit within " + limit.String(), Cause: cause}
}

// NonZeroExit reports an engine run that finished with a failure status.
func NonZeroExit(path string, code int, cause error) *Error {
	return &Error{Kind: KindNonZeroExit, Op: "engine", Path: path, ExitCode: code, Cause: cause}
}

// MissingHeader reports a report without a recognizable coordinate table.
func MissingHeader(path string, detail string) *Error {
	return &Error{Kind: KindMissingHeader, Op: "report", Path: path, Detail: detail}
}

// MalformedRow reports a coordinate row that cannot be used.
func MalformedRow(path string, line int, detail string, cause error) *Error {
	return &Error{Kind: KindMalformedRow, Op: "report", Path: path, Line: line, Detail: detail, Cause: cause}
}

// KindOf returns the Kind of the first Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
