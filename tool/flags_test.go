package tool

import (
	"testing"

	"github.com/spf13/pflag"

	"github.com/moyoez/configd/types"
)

func TestFlagsApplyOnlySetValues(t *testing.T) {
	var f Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs, &f)
	if err := fs.Parse([]string{"--storage", "sqlite", "--notify-socket", "/tmp/gui.sock"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg := types.DaemonConfig{Listen: "127.0.0.1:1", Log: "prod", Storage: types.StorageConfig{Driver: "file", Path: "x"}}
	f.Apply(&cfg)

	if cfg.Storage.Driver != "sqlite" || cfg.Storage.Path != "x" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.NotifySocket != "/tmp/gui.sock" {
		t.Errorf("NotifySocket = %q", cfg.NotifySocket)
	}
	if cfg.Listen != "127.0.0.1:1" || cfg.Log != "prod" {
		t.Errorf("unset flags changed config: %+v", cfg)
	}
}

func TestFlagsStorageSwitchesDefaultPath(t *testing.T) {
	cfg := defaultConfig()
	Flags{Storage: "sqlite"}.Apply(&cfg)
	if want := DefaultStoragePath("sqlite"); cfg.Storage.Path != want {
		t.Errorf("sqlite path = %q, want %q", cfg.Storage.Path, want)
	}

	Flags{Storage: "file"}.Apply(&cfg)
	if want := DefaultStoragePath("file"); cfg.Storage.Path != want {
		t.Errorf("file path = %q, want %q", cfg.Storage.Path, want)
	}

	Flags{Storage: "memory"}.Apply(&cfg)
	if cfg.Storage.Driver != "memory" {
		t.Errorf("driver = %q, want memory", cfg.Storage.Driver)
	}
}
