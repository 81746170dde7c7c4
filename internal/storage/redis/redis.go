// Package redis provides a Redis-backed implementation of the storage.KV
// interface for deployments that want the store shared across restarts
// without a local database file.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/billsplit/billsplit/internal/storage"
)

// Ensure KV implements storage.KV
var _ storage.KV = (*KV)(nil)

// Config is the redis connection configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// KV stores entries as plain redis strings. Entries carry their own expiry
// inside the serialized envelope, so no redis-side TTL is set; eviction
// stays lazy and under the store's control.
type KV struct {
	client *goredis.Client
}

// New connects to redis and verifies the connection with a ping.
func New(ctx context.Context, config Config) (*KV, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}
	return &KV{client: client}, nil
}

// Close closes the client connection.
func (k *KV) Close() error {
	return k.client.Close()
}

// Get returns the value for key.
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := k.client.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get entry: %w", err)
	}
	return value, true, nil
}

// Set writes the value for key.
func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := k.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}
	return nil
}

// Delete removes the key.
func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
