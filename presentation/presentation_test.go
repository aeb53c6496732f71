package presentation

import "testing"

func TestFontFamily(t *testing.T) {
	tests := []struct {
		fonts []string
		want  string
	}{
		{nil, ""},
		{[]string{"poppins"}, `"poppins"`},
		{[]string{"Fira Code", "monospace"}, `"Fira Code","monospace"`},
	}
	for _, tt := range tests {
		if got := FontFamily(tt.fonts); got != tt.want {
			t.Errorf("FontFamily(%v) = %q, want %q", tt.fonts, got, tt.want)
		}
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		size float64
		want string
	}{
		{12, "12rem"},
		{1.5, "1.5rem"},
		{0.875, "0.875rem"},
	}
	for _, tt := range tests {
		if got := FontSize(tt.size); got != tt.want {
			t.Errorf("FontSize(%v) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestFanoutForwardsToAll(t *testing.T) {
	a, b := NewState(), NewState()
	f := Fanout{a, Nop{}, b}

	f.SetTheme("dark")
	f.SetFontFamily(`"x"`)
	f.SetFontSize("2rem")

	for _, s := range []*State{a, b} {
		cur := s.Current()
		if cur.Theme != "dark" || cur.FontFamily != `"x"` || cur.FontSize != "2rem" {
			t.Errorf("state = %+v", cur)
		}
	}
}
