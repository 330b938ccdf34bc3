package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const eventLogSchema = `
CREATE TABLE IF NOT EXISTS event_log (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type   TEXT    NOT NULL,
    aggregate_id INTEGER NOT NULL,
    payload      TEXT    NOT NULL DEFAULT '{}',
    occurred_at  TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_log_aggregate ON event_log(event_type, aggregate_id);
`

const timeLayout = "2006-01-02T15:04:05.999999999Z"

// SQLiteLog appends every event to a local SQLite file. It is the sink used
// when no broker is available.
type SQLiteLog struct {
	db *sql.DB
}

func OpenSQLiteLog(path string) (*SQLiteLog, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventLogSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return &SQLiteLog{db: db}, nil
}

func (l *SQLiteLog) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("sqlite: encode payload of %s: %w", event.Type, err)
	}
	const q = `INSERT INTO event_log (event_type, aggregate_id, payload, occurred_at) VALUES (?, ?, ?, ?)`
	_, err = l.db.ExecContext(ctx, q, event.Type, event.AggregateID, string(payload), event.OccurredAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("sqlite: save %s for %d: %w", event.Type, event.AggregateID, err)
	}
	return nil
}

// ListByAggregate returns the events of one aggregate in insertion order.
func (l *SQLiteLog) ListByAggregate(ctx context.Context, eventType string, aggregateID int64) ([]Event, error) {
	const q = `SELECT event_type, aggregate_id, payload, occurred_at FROM event_log
               WHERE event_type = ? AND aggregate_id = ? ORDER BY id ASC`
	rows, err := l.db.QueryContext(ctx, q, eventType, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %s for %d: %w", eventType, aggregateID, err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e          Event
			payload    string
			occurredAt string
		)
		if err := rows.Scan(&e.Type, &e.AggregateID, &payload, &occurredAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
			return nil, fmt.Errorf("sqlite: decode payload: %w", err)
		}
		if e.OccurredAt, err = time.Parse(timeLayout, occurredAt); err != nil {
			return nil, fmt.Errorf("sqlite: parse occurred_at %q: %w", occurredAt, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (l *SQLiteLog) Close() error {
	return l.db.Close()
}
