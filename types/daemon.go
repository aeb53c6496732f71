package types

import "time"

// DaemonConfig represents the daemon configuration loaded from configd.yaml.
type DaemonConfig struct {
	Listen    string          `yaml:"listen"`
	Log       string          `yaml:"log"`
	LegacyDir string          `yaml:"legacyDir"` // directory holding the pre-migration config.json
	Debounce  time.Duration   `yaml:"debounce"`
	Storage   StorageConfig   `yaml:"storage"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	// NotifySocket, when set, receives presentation changes over a Unix socket.
	NotifySocket string `yaml:"notifySocket"`
}

// StorageConfig selects the persistent key-value backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // file | sqlite | memory
	Path   string `yaml:"path"`
}

// RateLimitConfig bounds PATCH /config per client IP.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// StatusResponse is the JSON shape for GET /api/self/v1/status.
type StatusResponse struct {
	Running bool `json:"running"`
	Loading bool `json:"loading"`
	Loaded  bool `json:"loaded"`
}
