package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/moyoez/configd/settings"
	"github.com/moyoez/configd/types"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	if _, ok, err := kv.Get("config.json"); err != nil || ok {
		t.Fatalf("Get on empty store = ok:%v err:%v, want absent", ok, err)
	}
	if err := kv.Set("config.json", `{"theme":"dark"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set("config.json", `{"theme":"light"}`); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	v, ok, err := kv.Get("config.json")
	if err != nil || !ok {
		t.Fatalf("Get = ok:%v err:%v", ok, err)
	}
	if v != `{"theme":"light"}` {
		t.Errorf("value = %q", v)
	}
	if err := kv.Set("configMigrated", ""); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	if v, ok, _ := kv.Get("configMigrated"); !ok || v != "" {
		t.Errorf("empty value: got %q ok=%v", v, ok)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestSQLiteKV(t *testing.T) {
	exerciseKV(t, openTestSQLite(t))
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("configMigrated", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if v, ok, err := s.Get("configMigrated"); err != nil || !ok || v != "true" {
		t.Errorf("after reopen: %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileKV(t *testing.T) {
	exerciseKV(t, NewFile(filepath.Join(t.TempDir(), "localstorage.json")))
}

func TestFileKVPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localstorage.json")
	if err := NewFile(path).Set("config.json", `{"lang":"de"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := NewFile(path).Get("config.json")
	if err != nil || !ok || v != `{"lang":"de"}` {
		t.Errorf("Get = %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileKVCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localstorage.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewFile(path).Get("config.json"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLegacyRead(t *testing.T) {
	dir := t.TempDir()
	l := NewLegacy(dir)

	_, err := l.ReadLegacyConfig(context.Background())
	if !errors.Is(err, settings.ErrLegacyRead) {
		t.Fatalf("missing file err = %v, want ErrLegacyRead", err)
	}

	if err := os.WriteFile(filepath.Join(dir, LegacyFileName), []byte(`{"theme":"dark"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := l.ReadLegacyConfig(context.Background())
	if err != nil {
		t.Fatalf("ReadLegacyConfig: %v", err)
	}
	if got != `{"theme":"dark"}` {
		t.Errorf("got %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.ReadLegacyConfig(ctx); !errors.Is(err, settings.ErrLegacyRead) {
		t.Errorf("cancelled ctx err = %v", err)
	}
}

func TestOpenDrivers(t *testing.T) {
	dir := t.TempDir()
	for _, cfg := range []types.StorageConfig{
		{Driver: "memory"},
		{Driver: "file", Path: filepath.Join(dir, "a", "localstorage.json")},
		{Driver: "sqlite", Path: filepath.Join(dir, "b", "settings.db")},
	} {
		kv, err := Open(cfg)
		if err != nil {
			t.Fatalf("Open(%+v): %v", cfg, err)
		}
		exerciseKV(t, kv)
		kv.Close()
	}
	if _, err := Open(types.StorageConfig{Driver: "redis"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestLegacyMigrationThroughStore(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, LegacyFileName), []byte(`{"theme":"dark"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	kv := NewFile(filepath.Join(dir, "localstorage.json"))
	store := settings.New(kv, NewLegacy(dir), settings.Options{})

	cfg := store.Load(context.Background())
	if cfg == nil {
		t.Fatal("Load returned nil")
	}
	if cfg.Theme != "dark" || cfg.Lang != "en" {
		t.Errorf("cfg = %+v", cfg)
	}
	if v, _, _ := kv.Get(settings.MigratedKey); v != "true" {
		t.Errorf("migration marker = %q", v)
	}
}
