package audit

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestRecordAndRecent(t *testing.T) {
	l := NewLogger(filepath.Join(t.TempDir(), "ledger", "ledger.sqlite"))

	if err := l.Record("generator", EventGenerationStarted, "naca2412", map[string]any{"name": "NACA 2412"}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := l.Record("generator", EventGenerationFinished, "naca2412", map[string]any{"points": 121}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := l.Record("generator", EventGenerationFailed, "naca0012", map[string]any{"error": "boom"}); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	events, err := l.Recent(10, "")
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Type != EventGenerationFailed || events[0].Stem != "naca0012" {
		t.Fatalf("expected newest event first, got %+v", events[0])
	}

	filtered, err := l.Recent(10, "naca2412")
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 events for naca2412, got %d", len(filtered))
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(filtered[0].PayloadJSON), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["points"] != float64(121) {
		t.Fatalf("unexpected payload %v", payload)
	}

	limited, err := l.Recent(1, "")
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	var l *Logger
	if err := l.Record("generator", EventGenerationStarted, "x", nil); err != nil {
		t.Fatalf("nil logger Record() error: %v", err)
	}
	if _, err := l.Recent(1, ""); err == nil {
		t.Fatalf("expected error reading from nil logger")
	}
}
