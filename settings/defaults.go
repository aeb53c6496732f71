package settings

import (
	"encoding/json"

	"github.com/bytedance/sonic"

	"github.com/moyoez/configd/types"
)

// Keys used in the persistent store.
const (
	ConfigKey   = "config.json"
	MigratedKey = "configMigrated"
)

// DefaultConfig returns a fresh copy of the default configuration.
func DefaultConfig() types.Config {
	return types.Config{
		Debug:               false,
		Lang:                "en",
		DoneOnboarding:      false,
		WatchNewDevices:     true,
		DevSettings:         json.RawMessage(`{}`),
		FeedbackSound:       true,
		FeedbackSoundVolume: 0.5,
		Theme:               "slime",
		TextSize:            12,
		Fonts:               []string{"poppins"},
	}
}

// decodeOverDefaults parses a stored blob on top of DefaultConfig, so keys
// missing from older blobs keep their default values.
func decodeOverDefaults(raw string) (types.Config, error) {
	cfg := DefaultConfig()
	if err := sonic.UnmarshalString(raw, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Fonts == nil {
		cfg.Fonts = DefaultConfig().Fonts
	}
	return cfg, nil
}
