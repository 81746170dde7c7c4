// Package storage provides an expiring key-value store over pluggable
// backends. Values are serialized together with an expiry timestamp and
// evicted lazily the next time they are read.
package storage

import (
	"context"
	"errors"
)

// ErrStorageUnavailable wraps any failure of the backing store. The engine
// has no I/O failure modes of its own; backend errors propagate to the
// caller behind this sentinel.
var ErrStorageUnavailable = errors.New("storage unavailable")

// KV is the backing store contract: a plain byte-oriented key-value map.
// Implementations do not interpret values and do not expire anything;
// expiry lives in the envelope written by Store.
//
// Operations are plain read-modify-write with no cross-process atomicity.
// The design assumes exactly one logical writer per key at a time.
type KV interface {
	// Get returns the value for key, with found=false when absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set writes the value for key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
