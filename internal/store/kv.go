// Package store persists projects and calendar events as JSON blobs under
// named keys. The key/value layer is opaque: a directory of JSON files or a
// single SQLite table.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"splitup/internal/config"
)

// Keys under which collections are stored
const (
	KeyProjects = "savedProjects"
	KeyEvents   = "calendarEvents"
)

// ErrKeyNotFound is returned by Get when nothing is stored under a key
var ErrKeyNotFound = errors.New("key not found")

// KV is a blob store addressed by string keys
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the backend selected by cfg, rooted at dataDir
func Open(cfg *config.Config, dataDir string) (KV, error) {
	switch cfg.Backend {
	case "", config.BackendJSON:
		return NewFileKV(dataDir)
	case config.BackendSQLite:
		return NewSQLiteKV(filepath.Join(dataDir, "splitup.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
