package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory implements Store using in-memory storage. All data is lost when
// the process exits.
//
// Memory is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string]*TableRecord
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]*TableRecord),
	}
}

// Save persists a table definition.
func (m *Memory) Save(ctx context.Context, record *TableRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := *record
	saved.UpdatedAt = time.Now()
	m.records[record.Name] = &saved
	return nil
}

// Load retrieves a table definition by name.
func (m *Memory) Load(ctx context.Context, name string) (*TableRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	copied := *record
	return &copied, nil
}

// List returns the names of all stored definitions, sorted.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.records))
	for name := range m.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a table definition.
func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, name)
	return nil
}

// Close releases resources. No-op for the memory store.
func (m *Memory) Close() error {
	return nil
}
