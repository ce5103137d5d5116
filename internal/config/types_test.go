// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/dotcargo/dotcargo/internal/directive"
	"github.com/dotcargo/dotcargo/internal/shell"
)

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value ColorScheme
		want  bool
	}{
		{"", true},
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"neon", false},
		{"Dark", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.value.IsValid()
			if valid != tt.want {
				t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.value, valid, tt.want)
			}
			if !tt.want {
				if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
					t.Errorf("errors = %v, want one ErrInvalidColorScheme", errs)
				}
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Runtime:  "container",
		Defaults: map[string]directive.Overrides{"brew": {}},
		UI:       UIConfig{ColorScheme: "neon"},
	}

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() = true, want false")
	}
	var ice *InvalidConfigError
	if len(errs) != 1 || !errors.As(errs[0], &ice) {
		t.Fatalf("errors = %v, want one *InvalidConfigError", errs)
	}
	if len(ice.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %v, want 3", ice.FieldErrors)
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Error("error does not wrap ErrInvalidConfig")
	}

	if valid, _ := DefaultConfig().IsValid(); !valid {
		t.Error("DefaultConfig().IsValid() = false")
	}
}

func TestConfig_DefaultsFor(t *testing.T) {
	t.Parallel()

	var nilCfg *Config
	if !nilCfg.DefaultsFor(directive.Cargo).IsZero() {
		t.Error("nil config should yield empty overrides")
	}

	yes := true
	cfg := &Config{Runtime: shell.ModeNative, Defaults: map[string]directive.Overrides{"cargo": {Stdout: &yes}}}
	if got := cfg.DefaultsFor(directive.Cargo); got.Stdout == nil || !*got.Stdout {
		t.Errorf("DefaultsFor(cargo) = %+v", got)
	}
}
