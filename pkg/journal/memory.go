package journal

import (
	"context"
	"sync"
	"time"
)

// Memory implements Storage in memory. Intended for tests and embedding;
// records are lost when the process exits.
type Memory struct {
	mu      sync.RWMutex
	records []*Record
}

// NewMemory creates an in-memory journal storage.
func NewMemory() *Memory {
	return &Memory{}
}

// Write persists a record.
func (m *Memory) Write(ctx context.Context, record *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.records = append(m.records, &copied)
	return nil
}

// Count returns the number of stored records.
func (m *Memory) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.records)), nil
}

// DeleteOlderThan removes records evaluated before the cutoff.
func (m *Memory) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var deleted int64
	for _, r := range m.records {
		if r.EvaluatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

// DeleteOldest removes the n oldest records. Records are held in write
// order, which the recorder guarantees is evaluation order.
func (m *Memory) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 {
		return 0, nil
	}
	if n > int64(len(m.records)) {
		n = int64(len(m.records))
	}
	m.records = m.records[n:]
	return n, nil
}

// Recent returns up to limit records, newest first.
func (m *Memory) Recent(ctx context.Context, limit int) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]*Record, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *m.records[i]
		out = append(out, &copied)
	}
	return out, nil
}

// Close releases resources. No-op for the memory storage.
func (m *Memory) Close() error {
	return nil
}
