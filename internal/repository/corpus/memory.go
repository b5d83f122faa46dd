// Package corpus persists classified records for the search side.
package corpus

import (
	"context"
	"sync"

	"github.com/procyonhq/defscope/internal/domain/record"
)

// Memory is an in-process corpus repository. Records keep insertion order,
// which the search side relies on for stable tie-breaks.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]int
	items []record.Record
}

// NewMemory creates an empty in-memory corpus.
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]int)}
}

// Store upserts records. A re-stored ID replaces the original in place,
// keeping its position.
func (m *Memory) Store(_ context.Context, records ...record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range records {
		if idx, ok := m.byID[rec.ID()]; ok {
			m.items[idx] = rec
			continue
		}
		m.byID[rec.ID()] = len(m.items)
		m.items = append(m.items, rec)
	}
	return nil
}

// List returns all records in insertion order.
func (m *Memory) List(_ context.Context) ([]record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]record.Record, len(m.items))
	copy(out, m.items)
	return out, nil
}

// Count returns the number of stored records.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

// Ping always succeeds for the in-memory corpus.
func (m *Memory) Ping(context.Context) error { return nil }
