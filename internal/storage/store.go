// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
)

// Store is a synchronous string key-value store.
// This abstraction allows swapping storage backends (SQLite, Redis, memory)
// without changing the editor layer.
type Store interface {
	// Get returns the value stored under key.
	// found is false (with a nil error) when the key does not exist.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases any resources held by the store.
	Close() error
}
