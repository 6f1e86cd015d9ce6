package main

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/.arcade/scores.db", filepath.Join(home, ".arcade/scores.db")},
		{"~", home},
		{"./scores.db", "./scores.db"},
		{"~other/x", "~other/x"},
	}
	for _, tc := range tests {
		if got := expandHome(tc.in); got != tc.want {
			t.Errorf("expandHome(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestPort(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"not-an-address": "not-an-address",
	}
	for in, want := range tests {
		if got := port(in); got != want {
			t.Errorf("port(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestLoadoutText(t *testing.T) {
	tests := []struct {
		v    platformer.Variant
		want string
	}{
		{platformer.Variant{}, "-"},
		{platformer.Variant{Swing: true, Loadout: []ability.Kind{ability.Dash}}, "E:swing J:dash"},
		{platformer.Variant{Loadout: []ability.Kind{ability.Dash, ability.Tuck, ability.Shield}}, "J:dash K:tuck L:shield"},
	}
	for _, tc := range tests {
		if got := loadoutText(tc.v); got != tc.want {
			t.Errorf("loadoutText(%+v) = %q, expected %q", tc.v, got, tc.want)
		}
	}
}
