package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cratedig-hq/cratedig/pkg/client"
)

const schema = `
CREATE TABLE IF NOT EXISTS request_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id  TEXT NOT NULL,
	method      TEXT NOT NULL,
	endpoint    TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	error_kind  TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL,
	wait_ms     INTEGER NOT NULL,
	retries     INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_request_history_created_at ON request_history(created_at);
`

// Entry is one recorded dispatch.
type Entry struct {
	ID         int64
	RequestID  string
	Method     string
	Endpoint   string
	StatusCode int
	ErrorKind  string
	Duration   time.Duration
	Wait       time.Duration
	Retries    int
	CreatedAt  time.Time
}

// Store records dispatches in a SQLite database. It is safe for concurrent
// use; SQLite serializes writers internally.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the history database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With("component", "history"),
	}, nil
}

// Record inserts one dispatch into the trail.
func (s *Store) Record(ctx context.Context, log client.RequestLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO request_history
			(request_id, method, endpoint, status_code, error_kind, duration_ms, wait_ms, retries, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.RequestID,
		log.Method,
		log.Endpoint,
		log.StatusCode,
		log.ErrorKind,
		log.Duration.Milliseconds(),
		log.RateLimitWait.Milliseconds(),
		log.Retries,
		log.Time.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}

// ObserveRequest implements client.Observer. Storage failures are logged
// rather than propagated; the audit trail never fails a dispatch.
func (s *Store) ObserveRequest(log client.RequestLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Record(ctx, log); err != nil {
		s.logger.Warn("failed to record request history",
			"request_id", log.RequestID,
			"error", err,
		)
	}
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, request_id, method, endpoint, status_code, error_kind,
		       duration_ms, wait_ms, retries, created_at
		FROM request_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMs, waitMs int64
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Method, &e.Endpoint,
			&e.StatusCode, &e.ErrorKind, &durationMs, &waitMs, &e.Retries, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.Wait = time.Duration(waitMs) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM request_history`).Scan(&n)
	return n, err
}

// DeleteOlderThan removes entries created before the cutoff and returns the
// number deleted.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM request_history WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune by age: %w", err)
	}
	return res.RowsAffected()
}

// TrimToCount drops the oldest entries until at most max remain.
func (s *Store) TrimToCount(ctx context.Context, max int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM request_history WHERE id IN (
			SELECT id FROM request_history
			ORDER BY created_at DESC, id DESC
			LIMIT -1 OFFSET ?
		)`, max)
	if err != nil {
		return 0, fmt.Errorf("failed to trim history: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
