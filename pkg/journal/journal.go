// Package journal records an audit trail of decision table evaluations.
//
// Each evaluation produces a Record with a generated UUID, the table name,
// the input, the matched row(s) and actions, and timing. Records are
// written asynchronously by a Recorder so evaluation paths never block on
// storage. Storage backends: an in-memory ring for tests and embedding,
// and SQLite for durable audit trails. Retention is enforced by a Pruner,
// optionally on a cron schedule.
package journal

import (
	"context"
	"fmt"
	"time"
)

// Record is one journaled evaluation.
type Record struct {
	// ID is a generated UUID v4.
	ID string `json:"id"`

	// Table is the name of the evaluated table.
	Table string `json:"table"`

	// Mode is the evaluation mode ("first_match" or "all_matches").
	Mode string `json:"mode"`

	// Input is the evaluation input as JSON.
	Input string `json:"input"`

	// Matched is the number of rows that matched.
	Matched int `json:"matched"`

	// MatchedRow is the index of the first matched row, -1 if none.
	MatchedRow int `json:"matched_row"`

	// Actions is the resulting action mapping(s) as JSON, empty if none.
	Actions string `json:"actions"`

	// NoMatch marks first-match evaluations that found no row.
	NoMatch bool `json:"no_match"`

	// Error holds the evaluation error message, if any.
	Error string `json:"error,omitempty"`

	// EvaluatedAt is when the evaluation happened.
	EvaluatedAt time.Time `json:"evaluated_at"`

	// Duration is how long the evaluation took.
	Duration time.Duration `json:"duration"`
}

// Storage defines the interface for journal persistence.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Write persists a record.
	Write(ctx context.Context, record *Record) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// DeleteOlderThan removes records evaluated before the cutoff and
	// returns the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest removes the n oldest records and returns the number
	// deleted.
	DeleteOldest(ctx context.Context, n int64) (int64, error)

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*Record, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageError indicates a journal backend failure.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

// Error returns the error message.
func (e *StorageError) Error() string {
	return fmt.Sprintf("journal %s storage: %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Err
}
