package storage

import (
	"context"
	"sync/atomic"

	"github.com/yndnr/medqueue-go/pkg/cmap"
)

// MemoryKV is an in-process KV. Its contents vanish with the process,
// which is what the session-scoped tier needs.
type MemoryKV struct {
	items  *cmap.Map[string, []byte]
	closed atomic.Bool
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: cmap.New[string, []byte]()}
}

// Get retrieves a copy of the value stored under key.
func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	v, ok := m.items.Get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.items.Set(key, append([]byte(nil), value...))
	return nil
}

// Delete removes key.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.items.Delete(key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	return m.items.Count()
}

// Close drops all contents.
func (m *MemoryKV) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.items.Clear()
	return nil
}
