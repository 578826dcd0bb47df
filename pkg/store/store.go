// Package store persists decision table definitions.
//
// Persistence is a collaborator of the core: the table model itself has no
// storage surface. Two backends are provided, an in-memory store for tests
// and embedding, and a SQLite store for durable persistence.
//
// Cell values round-trip through JSON, so numeric cells load back as
// float64. Matching is unaffected: cell equality compares numeric values
// across Go numeric types.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bklybor/decision-table/pkg/dtable"
)

// TableRecord is a stored table definition.
type TableRecord struct {
	Name        string
	Description string
	Table       *dtable.Table
	UpdatedAt   time.Time
}

// Store defines the interface for table definition persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists a table definition under record.Name, replacing any
	// existing definition with that name.
	Save(ctx context.Context, record *TableRecord) error

	// Load retrieves a table definition by name.
	// Returns a *NotFoundError if no definition exists.
	Load(ctx context.Context, name string) (*TableRecord, error)

	// List returns the names of all stored definitions, sorted.
	List(ctx context.Context) ([]string, error)

	// Delete removes a table definition. No-op if it doesn't exist.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the store.
	Close() error
}

// NotFoundError indicates no stored definition exists under a name.
type NotFoundError struct {
	Name string
}

// Error returns the error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("table definition %q not found", e.Name)
}

// StorageError indicates a backend failure.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

// Error returns the error message.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s storage: %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Err
}
