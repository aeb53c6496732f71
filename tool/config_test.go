package tool

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "configd.yaml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if cfg.Debounce != 10*time.Millisecond {
		t.Errorf("Debounce = %v, want 10ms", cfg.Debounce)
	}
	if cfg.Storage.Driver != "file" {
		t.Errorf("Storage.Driver = %q, want file", cfg.Storage.Driver)
	}

	again, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig (second): %v", err)
	}
	if again.Listen != cfg.Listen || again.Debounce != cfg.Debounce {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configd.yaml")
	data := "listen: 127.0.0.1:9000\ndebounce: 250ms\nstorage:\n  driver: sqlite\n  path: /tmp/x.db\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Debounce)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path != "/tmp/x.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if cfg.Log != "dev" {
		t.Errorf("Log = %q, want default dev", cfg.Log)
	}
	if cfg.RateLimit.Burst != 40 {
		t.Errorf("RateLimit.Burst = %d, want default 40", cfg.RateLimit.Burst)
	}
}

func TestLoadConfigRejectsDirectory(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestLoadConfigParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configd.yaml")
	if err := os.WriteFile(path, []byte("listen: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigSQLiteDriverGetsOwnPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configd.yaml")
	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	// the generated file spells out the file store path; only the driver is edited
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	edited := strings.Replace(string(data), "driver: file", "driver: sqlite", 1)
	if edited == string(data) {
		t.Fatalf("generated config has no file driver:\n%s", data)
	}
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if want := DefaultStoragePath("sqlite"); cfg.Storage.Path != want {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, want)
	}
}

func TestLoadConfigKeepsExplicitStoragePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configd.yaml")
	custom := filepath.Join(t.TempDir(), "gui.db")
	yml := "storage:\n  driver: sqlite\n  path: " + custom + "\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Path != custom {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, custom)
	}
}
