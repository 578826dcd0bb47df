package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// schema contains the SQL statements to create the journal schema.
const schema = `
CREATE TABLE IF NOT EXISTS decisions (
    id TEXT PRIMARY KEY,
    table_name TEXT NOT NULL,
    mode TEXT NOT NULL,
    input TEXT NOT NULL,
    matched INTEGER NOT NULL,
    matched_row INTEGER NOT NULL,
    actions TEXT,
    no_match BOOLEAN NOT NULL DEFAULT 0,
    error TEXT,
    evaluated_at TIMESTAMP NOT NULL,
    duration_us INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decisions_evaluated_at ON decisions(evaluated_at);
CREATE INDEX IF NOT EXISTS idx_decisions_table_name ON decisions(table_name);
`

// SQLiteConfig contains configuration for the SQLite journal backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true.
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite journal configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/journal.db",
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// SQLite implements Storage using SQLite.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a SQLite journal storage, initializing the schema.
func NewSQLite(config *SQLiteConfig) (*SQLite, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "open", Err: err}
	}

	s := &SQLite{db: db}
	if err := s.initialize(config); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize enables pragmas and creates the schema.
func (s *SQLite) initialize(config *SQLiteConfig) error {
	if config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return &StorageError{Backend: "sqlite", Op: "enable_wal", Err: err}
		}
	}
	if config.BusyTimeout > 0 {
		_, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", config.BusyTimeout.Milliseconds()))
		if err != nil {
			return &StorageError{Backend: "sqlite", Op: "set_busy_timeout", Err: err}
		}
	}
	if _, err := s.db.Exec(schema); err != nil {
		return &StorageError{Backend: "sqlite", Op: "create_schema", Err: err}
	}
	return nil
}

// Write persists a record.
func (s *SQLite) Write(ctx context.Context, record *Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions
		 (id, table_name, mode, input, matched, matched_row, actions, no_match, error, evaluated_at, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Table,
		record.Mode,
		record.Input,
		record.Matched,
		record.MatchedRow,
		record.Actions,
		record.NoMatch,
		record.Error,
		record.EvaluatedAt,
		record.Duration.Microseconds(),
	)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "write", Err: err}
	}
	return nil
}

// Count returns the number of stored records.
func (s *SQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decisions`).Scan(&count)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "count", Err: err}
	}
	return count, nil
}

// DeleteOlderThan removes records evaluated before the cutoff.
func (s *SQLite) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM decisions WHERE evaluated_at < ?`, cutoff)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "delete_older_than", Err: err}
	}
	return res.RowsAffected()
}

// DeleteOldest removes the n oldest records.
func (s *SQLite) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM decisions WHERE id IN (
		   SELECT id FROM decisions ORDER BY evaluated_at ASC LIMIT ?
		 )`, n)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "delete_oldest", Err: err}
	}
	return res.RowsAffected()
}

// Recent returns up to limit records, newest first.
func (s *SQLite) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, table_name, mode, input, matched, matched_row, actions, no_match, error, evaluated_at, duration_us
		 FROM decisions ORDER BY evaluated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "recent", Err: err}
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var (
			r          Record
			durationUS int64
		)
		err := rows.Scan(
			&r.ID, &r.Table, &r.Mode, &r.Input, &r.Matched, &r.MatchedRow,
			&r.Actions, &r.NoMatch, &r.Error, &r.EvaluatedAt, &durationUS,
		)
		if err != nil {
			return nil, &StorageError{Backend: "sqlite", Op: "scan", Err: err}
		}
		r.Duration = time.Duration(durationUS) * time.Microsecond
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
