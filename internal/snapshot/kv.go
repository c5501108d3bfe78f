package snapshot

import (
	"context"
	"sync"
)

// KV is a flat byte store keyed by name.
type KV interface {
	// Get returns the value for key; ok is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put writes all entries atomically.
	Put(ctx context.Context, entries map[string][]byte) error
	Close() error
}

// MemoryKV keeps values in process memory. Used for tests and the
// "memory" store setting.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Put(ctx context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range entries {
		m.data[k] = append([]byte(nil), v...)
	}
	return nil
}

func (m *MemoryKV) Close() error { return nil }
