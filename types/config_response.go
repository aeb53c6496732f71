package types

// ConfigResponse is the JSON shape for GET/PATCH /api/self/v1/config.
// Config is null until the first load or after an empty patch.
type ConfigResponse struct {
	Config *Config `json:"config"`
}

// ReloadResponse is the JSON shape for POST /api/self/v1/config/reload.
// Loaded is false when the store fell back to defaults.
type ReloadResponse struct {
	Loaded bool    `json:"loaded"`
	Config *Config `json:"config"`
}
