// Package storage provides the persistent key-value backends and the legacy
// config.json reader used by the settings store.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/moyoez/configd/tool"
	"github.com/moyoez/configd/types"
)

// KV is a persistent string key-value store that owns resources.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

var (
	_ KV = (*Memory)(nil)
	_ KV = (*File)(nil)
	_ KV = (*SQLite)(nil)
)

// Open returns the backend selected by cfg.Driver.
func Open(cfg types.StorageConfig) (KV, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil
	case "", "file":
		if err := ensureParent(cfg.Path); err != nil {
			return nil, err
		}
		return NewFile(cfg.Path), nil
	case "sqlite":
		if err := ensureParent(cfg.Path); err != nil {
			return nil, err
		}
		return OpenSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func ensureParent(path string) error {
	if path == "" {
		return fmt.Errorf("storage path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	tool.DefaultLogger.Debugf("Using storage at %s", path)
	return nil
}
