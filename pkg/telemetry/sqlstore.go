package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS reconcile_metrics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	path_label TEXT NOT NULL,
	duration_nanos INTEGER NOT NULL,
	dirty_nodes INTEGER NOT NULL,
	ranges_added INTEGER NOT NULL,
	ranges_deleted INTEGER NOT NULL
);
`

// SQLStore records reconcile metrics into a SQLite database via the
// pure-Go modernc.org/sqlite driver, the same dual-backend shape
// internal/storage/sqlite_store.go gives its own Store interface.
type SQLStore struct {
	db *sql.DB
}

// OpenSQLStore opens (creating if absent) a SQLite-backed Recorder at path.
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("telemetry: apply schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Record implements Recorder.
func (s *SQLStore) Record(ctx context.Context, row Row) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reconcile_metrics (path_label, duration_nanos, dirty_nodes, ranges_added, ranges_deleted)
		VALUES (?, ?, ?, ?, ?)`,
		row.PathLabel, row.DurationNanos, row.DirtyNodes, row.RangesAdded, row.RangesDeleted)
	if err != nil {
		return fmt.Errorf("telemetry: record: %w", err)
	}
	return nil
}

// Recent implements Recorder, returning up to limit rows newest-first.
func (s *SQLStore) Recent(ctx context.Context, limit int) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, path_label, duration_nanos, dirty_nodes, ranges_added, ranges_deleted
		FROM reconcile_metrics ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("telemetry: recent: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var ts time.Time
		if err := rows.Scan(&r.ID, &ts, &r.PathLabel, &r.DurationNanos, &r.DirtyNodes, &r.RangesAdded, &r.RangesDeleted); err != nil {
			return nil, fmt.Errorf("telemetry: scan row: %w", err)
		}
		r.Timestamp = ts
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close implements Recorder.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
