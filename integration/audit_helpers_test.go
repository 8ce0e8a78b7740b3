package integration_test

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// loadLedgerTypes counts ledger events per type for stem.
func loadLedgerTypes(t *testing.T, dbPath, stem string) map[string]int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.Query("SELECT type, COUNT(*) FROM events WHERE stem = ? GROUP BY type", stem)
	if err != nil {
		t.Fatalf("query ledger events: %v", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	types := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			t.Fatalf("scan ledger event: %v", err)
		}
		types[eventType] = count
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate ledger events: %v", err)
	}
	return types
}

func requireLedgerEvents(t *testing.T, dbPath, stem string, want map[string]int) {
	t.Helper()
	types := loadLedgerTypes(t, dbPath, stem)
	for eventType, count := range want {
		if types[eventType] != count {
			t.Fatalf("ledger %s: %s has %d %s events, want %d (all: %v)", dbPath, stem, types[eventType], eventType, count, types)
		}
	}
}
