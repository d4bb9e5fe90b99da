// Package storage provides the key-value persistence behind progress and
// settings.
//
// A [Backend] stores raw bytes under string keys. Implementations cover an
// in-process map ([Memory]), a directory of JSON files ([File]), SQLite,
// Redis and MongoDB. [Capped] limits value sizes the way small browser-style
// stores do, and [Fallback] degrades to an alternate backend when the
// primary cannot be written.
//
// [Client] sits on top: it namespaces keys, serializes values as JSON and
// absorbs every failure. A read that fails behaves like a missing value and
// a write that fails is discarded; both are logged. Callers therefore never
// handle storage errors themselves.
//
//	backend, _ := storage.Open(ctx, storage.Config{Driver: "file", Path: dir})
//	client := storage.NewClient(backend)
//	client.SetItem(ctx, "app_settings", settings)
package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Backend is a raw key-value store. Implementations are safe for
// concurrent use.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns the stored keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases resources held by the backend.
	Close() error
}

// Memory is an in-process Backend. Its contents are lost on exit.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements Backend.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements Backend.
func (m *Memory) Set(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Delete implements Backend.
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys implements Backend.
func (m *Memory) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close does nothing for the memory backend.
func (m *Memory) Close() error {
	return nil
}

// Ensure Memory implements Backend.
var _ Backend = (*Memory)(nil)
