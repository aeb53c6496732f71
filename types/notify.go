package types

// Notification types broadcast over the notify websocket.
const (
	NotifyTypeTheme      = "theme"
	NotifyTypeFontFamily = "font_family"
	NotifyTypeFontSize   = "font_size"
	NotifyTypeConfig     = "config"
)

// Notification represents a notification message structure
type Notification struct {
	Type string         `json:"type,omitempty"` // one of the NotifyType* constants
	ID   string         `json:"id,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}
