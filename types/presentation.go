package types

// Presentation is the live state derived from Config for the UI layer:
// data-theme, --font-name and --font-size.
type Presentation struct {
	Theme      string `json:"theme"`
	FontFamily string `json:"font_family"`
	FontSize   string `json:"font_size"`
}
