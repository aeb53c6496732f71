package tool

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moyoez/configd/types"
)

const AppIdentifier = "configd"

var ConfigPath = "configd.yaml" // be aware that it can be changed, default to ./configd.yaml

// AppConfigDir returns the per-user application config directory,
// falling back to the working directory when the OS doesn't report one.
func AppConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		DefaultLogger.Debugf("AppConfigDir: %v, using working directory", err)
		return "."
	}
	return filepath.Join(dir, AppIdentifier)
}

// Default storage file names under AppConfigDir.
const (
	FileStorageName   = "localstorage.json"
	SQLiteStorageName = "settings.db"
)

// DefaultStoragePath returns the default store location for driver, or ""
// when the driver keeps nothing on disk.
func DefaultStoragePath(driver string) string {
	switch driver {
	case "", "file":
		return filepath.Join(AppConfigDir(), FileStorageName)
	case "sqlite":
		return filepath.Join(AppConfigDir(), SQLiteStorageName)
	default:
		return ""
	}
}

// FixStoragePath points a path left at another driver's default (or empty)
// at the default for sc.Driver, so switching drivers never reuses the other
// backend's file.
func FixStoragePath(sc *types.StorageConfig) {
	want := DefaultStoragePath(sc.Driver)
	if want == "" || sc.Path == want {
		return
	}
	if sc.Path == "" || sc.Path == DefaultStoragePath("file") || sc.Path == DefaultStoragePath("sqlite") {
		DefaultLogger.Debugf("Storage driver %q uses %s", sc.Driver, want)
		sc.Path = want
	}
}

func defaultConfig() types.DaemonConfig {
	appDir := AppConfigDir()
	return types.DaemonConfig{
		Listen:    "127.0.0.1:53318", // next to the LocalSend port, loopback only.
		Log:       "dev",
		LegacyDir: appDir,
		Debounce:  10 * time.Millisecond,
		Storage: types.StorageConfig{
			Driver: "file",
			Path:   filepath.Join(appDir, FileStorageName),
		},
		RateLimit: types.RateLimitConfig{
			RPS:   20,
			Burst: 40,
		},
	}
}

// LoadConfig reads the daemon config at path, layered over the defaults.
// A missing file is created with default values.
func LoadConfig(path string) (types.DaemonConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeDefaultConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %w", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	FixStoragePath(&cfg.Storage)
	if cfg.Debounce <= 0 {
		DefaultLogger.Warnf("Invalid debounce %v, using 10ms", cfg.Debounce)
		cfg.Debounce = 10 * time.Millisecond
	}

	return cfg, nil
}

func writeDefaultConfig(path string, cfg types.DaemonConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
