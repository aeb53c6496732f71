// Package presentation carries the theme, font and text-size values derived
// from the stored config to whatever renders the UI.
package presentation

import (
	"strconv"
	"strings"
	"sync"

	"github.com/moyoez/configd/types"
)

// Presenter receives presentation side effects. Implementations must be safe
// for concurrent use.
type Presenter interface {
	SetTheme(theme string)
	SetFontFamily(family string)
	SetFontSize(size string)
}

// FontFamily renders fonts as a quoted, comma-separated list in preference order.
func FontFamily(fonts []string) string {
	quoted := make([]string, len(fonts))
	for i, f := range fonts {
		quoted[i] = `"` + f + `"`
	}
	return strings.Join(quoted, ",")
}

// FontSize renders a text size in rem using the shortest decimal form.
func FontSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64) + "rem"
}

// State keeps the most recent presentation values in memory.
type State struct {
	mu  sync.RWMutex
	cur types.Presentation
}

func NewState() *State {
	return &State{}
}

func (s *State) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.Theme = theme
}

func (s *State) SetFontFamily(family string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.FontFamily = family
}

func (s *State) SetFontSize(size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.FontSize = size
}

// Current returns a copy of the presentation state.
func (s *State) Current() types.Presentation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Fanout forwards every effect to each presenter in order.
type Fanout []Presenter

func (f Fanout) SetTheme(theme string) {
	for _, p := range f {
		p.SetTheme(theme)
	}
}

func (f Fanout) SetFontFamily(family string) {
	for _, p := range f {
		p.SetFontFamily(family)
	}
}

func (f Fanout) SetFontSize(size string) {
	for _, p := range f {
		p.SetFontSize(size)
	}
}

// Nop discards all effects.
type Nop struct{}

func (Nop) SetTheme(string)      {}
func (Nop) SetFontFamily(string) {}
func (Nop) SetFontSize(string)   {}
