package audit

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Event types recorded by the generator.
const (
	EventGenerationStarted   = "generation_started"
	EventGenerationFinished  = "generation_finished"
	EventGenerationFailed    = "generation_failed"
	EventNamelistOverwritten = "namelist_overwritten"
)

// Event is one ledger row.
type Event struct {
	ID          int64
	Time        time.Time
	Actor       string
	Type        string
	Stem        string
	PayloadJSON string
}

// Logger writes generation events to a SQLite ledger.
type Logger struct {
	DBPath string
}

// NewLogger returns a Logger bound to the provided DB path.
func NewLogger(dbPath string) *Logger {
	return &Logger{DBPath: dbPath}
}

// Record appends an event. A nil Logger records nothing.
func (l *Logger) Record(actor, eventType, stem string, payload any) error {
	if l == nil {
		return nil
	}
	db, err := l.open()
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = db.Exec(
		"INSERT INTO events (ts, actor, type, stem, payload_json) VALUES (?, ?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339Nano),
		actor,
		eventType,
		stem,
		string(payloadJSON),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first. Stem filters when set.
func (l *Logger) Recent(limit int, stem string) ([]Event, error) {
	if l == nil {
		return nil, errors.New("audit ledger is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	db, err := l.open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	query := "SELECT id, ts, actor, type, stem, payload_json FROM events"
	args := []any{}
	if stem != "" {
		query += " WHERE stem = ?"
		args = append(args, stem)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var events []Event
	for rows.Next() {
		var ev Event
		var ts string
		if err := rows.Scan(&ev.ID, &ts, &ev.Actor, &ev.Type, &ev.Stem, &ev.PayloadJSON); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		ev.Time, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse audit timestamp %q: %w", ts, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit events: %w", err)
	}
	return events, nil
}

func (l *Logger) open() (*sql.DB, error) {
	if l.DBPath == "" {
		return nil, errors.New("audit db path is required")
	}
	absPath, err := filepath.Abs(l.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve audit db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure audit db dir: %w", err)
	}
	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			actor TEXT NOT NULL,
			type TEXT NOT NULL,
			stem TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_stem ON events(stem, id);
	`)
	if err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}
