package ui

import (
	"reflect"
	"testing"

	"weekplan/internal/config"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name     string
		custom   string
		defaults []string
		want     []string
	}{
		{"empty uses defaults", "", []string{"a", "ctrl+a"}, []string{"a", "ctrl+a"}},
		{"single custom", "n", []string{"a"}, []string{"n"}},
		{"comma list trimmed", " n , ctrl+n ", []string{"a"}, []string{"n", "ctrl+n"}},
		{"blank entries dropped", "n,,", []string{"a"}, []string{"n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseKeys(tt.custom, tt.defaults...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseKeys(%q) = %v, want %v", tt.custom, got, tt.want)
			}
		})
	}
}

func TestNewActivityKeyMap_CustomKeys(t *testing.T) {
	km := NewActivityKeyMap(&config.KeysConfig{
		AddActivity: "ctrl+n",
		NextDay:     "L",
	})

	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlN}, km.Add) {
		t.Errorf("Add keys = %v, want [ctrl+n]", km.Add.Keys())
	}
	if key.Matches(keyMsg("a"), km.Add) {
		t.Error("default add key should be replaced by the custom one")
	}
	if !key.Matches(keyMsg("L"), km.NextDay) {
		t.Error("custom next-day key should match")
	}
	if !key.Matches(keyMsg("x"), km.Delete) {
		t.Error("unset keys should keep their defaults")
	}
}

func TestNewKeyMaps_NilConfig(t *testing.T) {
	global := NewGlobalKeyMap(nil)
	if !key.Matches(keyMsg("q"), global.Quit) {
		t.Error("nil config should produce default quit binding")
	}
	schedules := NewScheduleKeyMap(nil)
	if !key.Matches(keyMsg("ctrl+x"), schedules.ClearAll) {
		t.Error("nil config should produce default clear-all binding")
	}
}
