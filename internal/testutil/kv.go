package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/pocketbook/internal/common"
)

// MemoryKV is an in-memory service.KVStore. PutErr, when set, fails every Put.
type MemoryKV struct {
	PutErr error
	data   map[string][]byte
	puts   map[string]int
	mu     sync.Mutex
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data: make(map[string][]byte),
		puts: make(map[string]int),
	}
}

// Get implements service.KVStore.
func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, common.ErrNotFound)
	}
	return append([]byte(nil), value...), nil
}

// Put implements service.KVStore.
func (m *MemoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PutErr != nil {
		return m.PutErr
	}
	m.data[key] = append([]byte(nil), value...)
	m.puts[key]++
	return nil
}

// Delete implements service.KVStore.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Has reports whether key is present.
func (m *MemoryKV) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// PutCount reports how many successful writes key has seen.
func (m *MemoryKV) PutCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts[key]
}
