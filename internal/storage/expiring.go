package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// envelope is the serialized form of a stored entry: the value plus its
// expiry as epoch milliseconds.
type envelope struct {
	Value  json.RawMessage `json:"value"`
	Expiry int64           `json:"expiry"`
}

// Store persists values of type T with a time-to-live measured in days.
// Expiry is checked lazily at Get time; there is no background sweep, so
// an expired entry that is never read stays in the backend until it is
// read or cleared. That matches the product's behavior and is an accepted
// limitation.
type Store[T any] struct {
	kv  KV
	now func() time.Time
}

// NewStore wraps a KV backend.
func NewStore[T any](kv KV) *Store[T] {
	return &Store[T]{kv: kv, now: time.Now}
}

// Put serializes value with an expiry of ttlDays from now and writes it
// under key.
func (s *Store[T]) Put(ctx context.Context, key string, value T, ttlDays int) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}
	env := envelope{
		Value:  raw,
		Expiry: s.now().Add(time.Duration(ttlDays) * 24 * time.Hour).UnixMilli(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope for %q: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("%w: set %q: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}

// Get reads the value under key. It returns found=false when the key is
// absent or expired; an expired entry is evicted on the way out. The
// comparison is strictly now > expiry, so a zero-day TTL expires on the
// next read after the wall clock advances.
func (s *Store[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	data, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("%w: get %q: %v", ErrStorageUnavailable, key, err)
	}
	if !found {
		return zero, false, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return zero, false, fmt.Errorf("unmarshal envelope for %q: %w", key, err)
	}
	if s.now().UnixMilli() > env.Expiry {
		if err := s.kv.Delete(ctx, key); err != nil {
			return zero, false, fmt.Errorf("%w: evict %q: %v", ErrStorageUnavailable, key, err)
		}
		return zero, false, nil
	}

	var value T
	if err := json.Unmarshal(env.Value, &value); err != nil {
		return zero, false, fmt.Errorf("unmarshal value for %q: %w", key, err)
	}
	return value, true, nil
}

// Clear unconditionally evicts the key.
func (s *Store[T]) Clear(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: delete %q: %v", ErrStorageUnavailable, key, err)
	}
	return nil
}
