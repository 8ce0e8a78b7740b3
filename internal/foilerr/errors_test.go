package foilerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestIsMatchesKind(t *testing.T) {
	err := MalformedRow("out/naca0012.out", 14, "expected 3 fields, got 2", nil)
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected errors.Is to match ErrMalformedRow")
	}
	if errors.Is(err, ErrMissingHeader) {
		t.Fatalf("did not expect match with ErrMissingHeader")
	}

	wrapped := fmt.Errorf("generate naca0012: %w", err)
	if !errors.Is(wrapped, ErrMalformedRow) {
		t.Fatalf("expected wrapped error to match ErrMalformedRow")
	}
	if got := KindOf(wrapped); got != KindMalformedRow {
		t.Fatalf("KindOf() = %q, want %q", got, KindMalformedRow)
	}
}

func TestKindOfPlainError(t *testing.T) {
	if got := KindOf(errors.New("disk full")); got != "" {
		t.Fatalf("KindOf() = %q, want empty", got)
	}
	if got := KindOf(nil); got != "" {
		t.Fatalf("KindOf(nil) = %q, want empty", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want []string
	}{
		{
			name: "malformed row carries location",
			err:  MalformedRow("naca.out", 7, "bad x", errors.New("strconv")),
			want: []string{"[malformed_row]", "naca.out:7", "bad x", "caused by: strconv"},
		},
		{
			name: "non-zero exit carries code",
			err:  NonZeroExit("/opt/naca456", 3, nil),
			want: []string{"[non_zero_exit]", "/opt/naca456", "exit code 3"},
		},
		{
			name: "timeout names limit",
			err:  ExecutionTimeout("/opt/naca456", 2*time.Second, nil),
			want: []string{"[execution_timeout]", "no exit within 2s"},
		},
		{
			name: "unsupported family quotes tag",
			err:  UnsupportedFamily("4M"),
			want: []string{"[unsupported_family]", `"4M"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, part := range tt.want {
				if !strings.Contains(msg, part) {
					t.Errorf("message %q missing %q", msg, part)
				}
			}
		})
	}
}

func TestUnwrapCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Configuration("/opt/naca456", "not executable", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable through Unwrap")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration match")
	}
}
