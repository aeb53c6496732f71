package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// File keeps every key in a single JSON object on disk, the same shape a
// browser's localStorage would have. The document is read on first access
// and rewritten atomically on every Set.
type File struct {
	path string

	mu     sync.Mutex
	data   map[string]string
	loaded bool
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadLocked(); err != nil {
		return "", false, err
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.loadLocked(); err != nil {
		return err
	}
	prev, had := f.data[key]
	f.data[key] = value
	if err := f.writeLocked(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *File) Close() error { return nil }

func (f *File) loadLocked() error {
	if f.loaded {
		return nil
	}
	data, err := os.ReadFile(f.path)
	switch {
	case os.IsNotExist(err):
		f.data = make(map[string]string)
	case err != nil:
		return fmt.Errorf("read %s: %w", f.path, err)
	default:
		m := make(map[string]string)
		if len(data) > 0 {
			if err := sonic.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("parse %s: %w", f.path, err)
			}
		}
		f.data = m
	}
	f.loaded = true
	return nil
}

func (f *File) writeLocked() error {
	payload, err := sonic.Marshal(f.data)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".localstorage-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
