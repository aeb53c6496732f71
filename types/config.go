package types

import (
	"encoding/json"
	"slices"
)

// Config is the GUI configuration record persisted under the "config.json" key.
type Config struct {
	Debug               bool            `json:"debug"`
	Lang                string          `json:"lang"`
	DoneOnboarding      bool            `json:"doneOnboarding"`
	WatchNewDevices     bool            `json:"watchNewDevices"`
	DevSettings         json.RawMessage `json:"devSettings"` // opaque developer-mode form, stored as-is
	FeedbackSound       bool            `json:"feedbackSound"`
	FeedbackSoundVolume float64         `json:"feedbackSoundVolume"` // 0..1 by convention
	Theme               string          `json:"theme"`
	TextSize            float64         `json:"textSize"` // rem
	Fonts               []string        `json:"fonts"`    // first is preferred
}

// Clone returns a deep copy so callers can't mutate shared slices.
func (c Config) Clone() Config {
	out := c
	out.Fonts = slices.Clone(c.Fonts)
	if c.DevSettings != nil {
		out.DevSettings = slices.Clone(c.DevSettings)
	}
	return out
}

// ConfigPatch is a partial Config: nil fields are absent and left untouched on merge.
type ConfigPatch struct {
	Debug               *bool           `json:"debug,omitempty"`
	Lang                *string         `json:"lang,omitempty"`
	DoneOnboarding      *bool           `json:"doneOnboarding,omitempty"`
	WatchNewDevices     *bool           `json:"watchNewDevices,omitempty"`
	DevSettings         json.RawMessage `json:"devSettings,omitempty"`
	FeedbackSound       *bool           `json:"feedbackSound,omitempty"`
	FeedbackSoundVolume *float64        `json:"feedbackSoundVolume,omitempty"`
	Theme               *string         `json:"theme,omitempty"`
	TextSize            *float64        `json:"textSize,omitempty"`
	Fonts               []string        `json:"fonts,omitempty"`
}

// IsEmpty reports whether the patch carries no keys at all.
func (p ConfigPatch) IsEmpty() bool {
	return p.Debug == nil &&
		p.Lang == nil &&
		p.DoneOnboarding == nil &&
		p.WatchNewDevices == nil &&
		p.DevSettings == nil &&
		p.FeedbackSound == nil &&
		p.FeedbackSoundVolume == nil &&
		p.Theme == nil &&
		p.TextSize == nil &&
		p.Fonts == nil
}

// ApplyTo returns base with every key present in the patch overwritten.
func (p ConfigPatch) ApplyTo(base Config) Config {
	out := base.Clone()
	if p.Debug != nil {
		out.Debug = *p.Debug
	}
	if p.Lang != nil {
		out.Lang = *p.Lang
	}
	if p.DoneOnboarding != nil {
		out.DoneOnboarding = *p.DoneOnboarding
	}
	if p.WatchNewDevices != nil {
		out.WatchNewDevices = *p.WatchNewDevices
	}
	if p.DevSettings != nil {
		out.DevSettings = slices.Clone(p.DevSettings)
	}
	if p.FeedbackSound != nil {
		out.FeedbackSound = *p.FeedbackSound
	}
	if p.FeedbackSoundVolume != nil {
		out.FeedbackSoundVolume = *p.FeedbackSoundVolume
	}
	if p.Theme != nil {
		out.Theme = *p.Theme
	}
	if p.TextSize != nil {
		out.TextSize = *p.TextSize
	}
	if p.Fonts != nil {
		out.Fonts = slices.Clone(p.Fonts)
	}
	return out
}

// FullPatch builds a patch that carries every field of cfg.
func FullPatch(cfg Config) ConfigPatch {
	cfg = cfg.Clone()
	devSettings := cfg.DevSettings
	if devSettings == nil {
		devSettings = json.RawMessage("null")
	}
	fonts := cfg.Fonts
	if fonts == nil {
		fonts = []string{}
	}
	return ConfigPatch{
		Debug:               &cfg.Debug,
		Lang:                &cfg.Lang,
		DoneOnboarding:      &cfg.DoneOnboarding,
		WatchNewDevices:     &cfg.WatchNewDevices,
		DevSettings:         devSettings,
		FeedbackSound:       &cfg.FeedbackSound,
		FeedbackSoundVolume: &cfg.FeedbackSoundVolume,
		Theme:               &cfg.Theme,
		TextSize:            &cfg.TextSize,
		Fonts:               fonts,
	}
}
