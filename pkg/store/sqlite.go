package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// schema contains the SQL statements to create the table store schema.
const schema = `
CREATE TABLE IF NOT EXISTS decision_tables (
    name TEXT PRIMARY KEY,
    description TEXT,
    conditions TEXT NOT NULL,
    actions TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS decision_table_rows (
    table_name TEXT NOT NULL REFERENCES decision_tables(name) ON DELETE CASCADE,
    row_index INTEGER NOT NULL,
    conditions TEXT NOT NULL,
    actions TEXT NOT NULL,
    PRIMARY KEY (table_name, row_index)
);
`

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/tables.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLite implements Store using a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed store, initializing the schema and
// enabling WAL mode.
func NewSQLite(config *SQLiteConfig) (*SQLite, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	db, err := sql.Open("sqlite", config.Path)
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
	if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return &StorageError{Backend: "sqlite", Op: "enable_wal", Err: err}
	}
	if _, err := s.db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return &StorageError{Backend: "sqlite", Op: "enable_foreign_keys", Err: err}
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

// Save persists a table definition, replacing any existing one.
func (s *SQLite) Save(ctx context.Context, record *TableRecord) error {
	conditions, err := encodeNames(record.Table.ConditionColumns())
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "encode_conditions", Err: err}
	}
	actions, err := encodeNames(record.Table.ActionColumns())
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "encode_actions", Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "begin", Err: err}
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO decision_tables (name, description, conditions, actions, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   description = excluded.description,
		   conditions = excluded.conditions,
		   actions = excluded.actions,
		   updated_at = excluded.updated_at`,
		record.Name, record.Description, string(conditions), string(actions), time.Now().UTC(),
	)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "save_table", Err: err}
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM decision_table_rows WHERE table_name = ?`, record.Name)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "clear_rows", Err: err}
	}

	for i, row := range record.Table.Rows() {
		condJSON, err := encodeCells(row.Conditions())
		if err != nil {
			return &StorageError{Backend: "sqlite", Op: "encode_row", Err: err}
		}
		actJSON, err := encodeCells(row.Actions())
		if err != nil {
			return &StorageError{Backend: "sqlite", Op: "encode_row", Err: err}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO decision_table_rows (table_name, row_index, conditions, actions)
			 VALUES (?, ?, ?, ?)`,
			record.Name, i, string(condJSON), string(actJSON),
		)
		if err != nil {
			return &StorageError{Backend: "sqlite", Op: "save_row", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &StorageError{Backend: "sqlite", Op: "commit", Err: err}
	}
	return nil
}

// Load retrieves a table definition by name.
func (s *SQLite) Load(ctx context.Context, name string) (*TableRecord, error) {
	var (
		description    string
		conditionsJSON string
		actionsJSON    string
		updatedAt      time.Time
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT description, conditions, actions, updated_at FROM decision_tables WHERE name = ?`,
		name,
	).Scan(&description, &conditionsJSON, &actionsJSON, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Name: name}
	}
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "load_table", Err: err}
	}

	conditions, err := decodeNames([]byte(conditionsJSON))
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "decode_conditions", Err: err}
	}
	actions, err := decodeNames([]byte(actionsJSON))
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "decode_actions", Err: err}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT conditions, actions FROM decision_table_rows
		 WHERE table_name = ? ORDER BY row_index`,
		name,
	)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "load_rows", Err: err}
	}
	defer rows.Close()

	var rowData [][2][]byte
	for rows.Next() {
		var condJSON, actJSON string
		if err := rows.Scan(&condJSON, &actJSON); err != nil {
			return nil, &StorageError{Backend: "sqlite", Op: "scan_row", Err: err}
		}
		rowData = append(rowData, [2][]byte{[]byte(condJSON), []byte(actJSON)})
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "iterate_rows", Err: err}
	}

	table, err := rebuildTable(conditions, actions, rowData)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "rebuild", Err: err}
	}

	return &TableRecord{
		Name:        name,
		Description: description,
		Table:       table,
		UpdatedAt:   updatedAt,
	}, nil
}

// List returns the names of all stored definitions, sorted.
func (s *SQLite) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM decision_tables ORDER BY name`)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "list", Err: err}
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &StorageError{Backend: "sqlite", Op: "scan_name", Err: err}
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes a table definition and its rows.
func (s *SQLite) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "begin", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM decision_table_rows WHERE table_name = ?`, name); err != nil {
		return &StorageError{Backend: "sqlite", Op: "delete_rows", Err: err}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM decision_tables WHERE name = ?`, name); err != nil {
		return &StorageError{Backend: "sqlite", Op: "delete_table", Err: err}
	}
	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
