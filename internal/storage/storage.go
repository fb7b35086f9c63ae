// Package storage provides the small key-value stores that hold persisted
// client state such as the search history.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.New("storage: key not found")

// Storage is a string key-value store
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by Open
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Options configures the backend selected by Open
type Options struct {
	Dir        string // file backend directory
	RedisURL   string // redis backend URL, e.g. redis://localhost:6379/0
	SQLitePath string // sqlite backend database path
}

// Open creates the storage backend with the given name
func Open(ctx context.Context, backend string, opts Options) (Storage, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(opts.Dir)
	case BackendRedis:
		return NewRedis(ctx, opts.RedisURL)
	case BackendSQLite:
		return NewSQLite(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
