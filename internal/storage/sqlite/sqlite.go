// Package sqlite provides a SQLite-backed implementation of the storage.KV
// interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/billsplit/billsplit/internal/storage"
)

// Ensure KV implements storage.KV
var _ storage.KV = (*KV)(nil)

// KV stores entries in a single key-value table.
type KV struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);
`

// New creates a SQLite-backed KV at the given database path. It creates
// the parent directories and sets up the schema automatically.
func New(dbPath string) (*KV, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &KV{db: db}, nil
}

// Close closes the database connection.
func (k *KV) Close() error {
	return k.db.Close()
}

// Get returns the value for key.
func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := k.db.QueryRowContext(ctx,
		"SELECT value FROM entries WHERE key = ?", key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get entry: %w", err)
	}
	return value, true, nil
}

// Set writes the value for key, overwriting any previous value.
func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := k.db.ExecContext(ctx,
		`INSERT INTO entries (key, value, updated_at) VALUES (?, ?, unixepoch())
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set entry: %w", err)
	}
	return nil
}

// Delete removes the key.
func (k *KV) Delete(ctx context.Context, key string) error {
	_, err := k.db.ExecContext(ctx, "DELETE FROM entries WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
