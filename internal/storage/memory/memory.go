// Package memory provides an in-memory implementation of the storage.KV
// interface, used as the default backend and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/billsplit/billsplit/internal/storage"
)

// Ensure KV implements storage.KV
var _ storage.KV = (*KV)(nil)

// KV is a map-backed key-value store. The mutex guards against concurrent
// readers within one process; the single-logical-writer contract still
// applies.
type KV struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates an empty in-memory KV.
func New() *KV {
	return &KV{entries: make(map[string][]byte)}
}

// Get returns the value for key.
func (k *KV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	value, found := k.entries[key]
	return value, found, nil
}

// Set writes the value for key.
func (k *KV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.entries[key] = value
	return nil
}

// Delete removes the key.
func (k *KV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.entries, key)
	return nil
}

// Close is a no-op.
func (k *KV) Close() error {
	return nil
}

// Len returns the number of stored entries, expired or not.
func (k *KV) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.entries)
}
