package cmd

import (
	"testing"
)

func TestParsePatchArgs(t *testing.T) {
	patch, err := ParsePatchArgs([]string{
		"theme=dark",
		"textSize=14",
		"watchNewDevices=false",
		`fonts=["Fira Code","monospace"]`,
		"devSettings.mockDevices=3",
	})
	if err != nil {
		t.Fatalf("ParsePatchArgs: %v", err)
	}
	if patch.Theme == nil || *patch.Theme != "dark" {
		t.Errorf("theme = %v", patch.Theme)
	}
	if patch.TextSize == nil || *patch.TextSize != 14 {
		t.Errorf("textSize = %v", patch.TextSize)
	}
	if patch.WatchNewDevices == nil || *patch.WatchNewDevices {
		t.Errorf("watchNewDevices = %v", patch.WatchNewDevices)
	}
	if len(patch.Fonts) != 2 || patch.Fonts[0] != "Fira Code" {
		t.Errorf("fonts = %v", patch.Fonts)
	}
	if string(patch.DevSettings) != `{"mockDevices":3}` {
		t.Errorf("devSettings = %s", patch.DevSettings)
	}
	if patch.Lang != nil || patch.Debug != nil {
		t.Error("unexpected keys set")
	}
}

func TestParsePatchArgsErrors(t *testing.T) {
	tests := [][]string{
		{"theme"},
		{"=dark"},
		{"colour=red"},
		{"textSize=big"},
		{"fonts=inter"},
	}
	for _, args := range tests {
		if _, err := ParsePatchArgs(args); err == nil {
			t.Errorf("ParsePatchArgs(%v): expected error", args)
		}
	}
}
