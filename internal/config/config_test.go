// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dotcargo/dotcargo/internal/directive"
	"github.com/dotcargo/dotcargo/internal/issue"
	"github.com/dotcargo/dotcargo/internal/platform"
	"github.com/dotcargo/dotcargo/internal/shell"
	"github.com/dotcargo/dotcargo/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Runtime != shell.ModeNative {
		t.Errorf("expected default runtime to be native, got %s", cfg.Runtime)
	}
	if cfg.Shell != "" {
		t.Errorf("expected default shell to be empty, got %q", cfg.Shell)
	}
	if len(cfg.Defaults) != 0 {
		t.Errorf("expected no default overrides, got %v", cfg.Defaults)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != platform.Linux {
		t.Skip("XDG_CONFIG_HOME is only consulted on Linux")
	}

	xdg := t.TempDir()
	defer testutil.MustSetenv(t, "XDG_CONFIG_HOME", xdg)()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir() = %s, want %s", got, dir)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Runtime != shell.ModeNative || cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_CUEFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, FileName(), `
runtime: "virtual"
shell: "/usr/local/bin/dash"
defaults: {
	cargo: {
		stderr: false
		force_intel: true
	}
	"cargo-update": stdout: false
}
ui: verbose: true
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Runtime != shell.ModeVirtual {
		t.Errorf("Runtime = %s, want virtual", cfg.Runtime)
	}
	if cfg.Shell != "/usr/local/bin/dash" {
		t.Errorf("Shell = %q", cfg.Shell)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %s, want auto (default kept)", cfg.UI.ColorScheme)
	}

	got := directive.Resolve(directive.Cargo, cfg.DefaultsFor(directive.Cargo))
	if want := (directive.Options{ForceIntel: true}); got != want {
		t.Errorf("resolved cargo options = %+v, want %+v", got, want)
	}
	got = directive.Resolve(directive.CargoUpdate, cfg.DefaultsFor(directive.CargoUpdate))
	if want := (directive.Options{}); got != want {
		t.Errorf("resolved cargo-update options = %+v, want %+v", got, want)
	}
	if !cfg.DefaultsFor(directive.InstallRustup).IsZero() {
		t.Error("install-rustup overrides should be empty")
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown runtime", `runtime: "container"`},
		{"unknown top-level key", `container_engine: "docker"`},
		{"unknown directive", `defaults: link: stdout: true`},
		{"unknown option", `defaults: cargo: quiet: true`},
		{"non-bool option", `defaults: cargo: stdout: "yes"`},
		{"bad color scheme", `ui: color_scheme: "neon"`},
		{"syntax error", `runtime: {{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := testutil.MustWriteFile(t, dir, FileName(), tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("Load() error = nil, want schema error")
			}

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("Load() error type = %T, want *issue.ActionableError", err)
			}
			if ae.Resource != path {
				t.Errorf("Resource = %q, want %q", ae.Resource, path)
			}
			if !ae.HasSuggestions() {
				t.Error("expected suggestions on config load error")
			}
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("Load() error = nil, want not found")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_ExplicitFileWins(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, FileName(), `runtime: "native"`)
	explicit := testutil.MustWriteFile(t, t.TempDir(), "custom.cue", `runtime: "virtual"`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: explicit, ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Runtime != shell.ModeVirtual {
		t.Errorf("Runtime = %s, want virtual", cfg.Runtime)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	defer testutil.MustSetenv(t, "DOTCARGO_RUNTIME", "virtual")()
	defer testutil.MustSetenv(t, "DOTCARGO_UI_VERBOSE", "true")()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Runtime != shell.ModeVirtual {
		t.Errorf("Runtime = %s, want virtual", cfg.Runtime)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
}

func TestLoad_InvalidEnvOverride(t *testing.T) {
	defer testutil.MustSetenv(t, "DOTCARGO_RUNTIME", "container")()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Load() error = %v, want ErrInvalidConfig", err)
	}
	if !errors.Is(err, shell.ErrInvalidMode) {
		t.Errorf("Load() error = %v, want ErrInvalidMode in chain", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	cfg := &Config{
		Runtime: shell.ModeVirtual,
		Shell:   "/bin/dash",
		Defaults: map[string]directive.Overrides{
			"cargo":          {Stderr: &no},
			"install-rustup": {ForceIntel: &yes},
		},
		UI: UIConfig{ColorScheme: ColorSchemeDark, Verbose: true},
	}

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, FileName(), GenerateCUE(cfg))

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() of generated CUE error = %v\n%s", err, GenerateCUE(cfg))
	}

	if loaded.Runtime != cfg.Runtime || loaded.Shell != cfg.Shell || loaded.UI != cfg.UI {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
	if got := directive.Resolve(directive.InstallRustup, loaded.DefaultsFor(directive.InstallRustup)); !got.ForceIntel {
		t.Error("install-rustup force_intel lost in round trip")
	}
	if got := directive.Resolve(directive.Cargo, loaded.DefaultsFor(directive.Cargo)); got.Stderr {
		t.Error("cargo stderr override lost in round trip")
	}
}

func TestGenerateCUE_SkipsEmptyDefaults(t *testing.T) {
	no := false
	cfg := DefaultConfig()
	cfg.Defaults = map[string]directive.Overrides{
		"cargo":        {},
		"cargo-update": {Stdout: &no},
	}

	out := GenerateCUE(cfg)
	if strings.Contains(out, `"cargo": {`) {
		t.Errorf("GenerateCUE() wrote an empty cargo block:\n%s", out)
	}
	if !strings.Contains(out, `"cargo-update": {`) || !strings.Contains(out, "stdout: false") {
		t.Errorf("GenerateCUE() dropped cargo-update defaults:\n%s", out)
	}

	cfg.Defaults = map[string]directive.Overrides{"cargo": {}}
	if out := GenerateCUE(cfg); strings.Contains(out, "defaults:") {
		t.Errorf("GenerateCUE() wrote a defaults block with no overrides:\n%s", out)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	SetConfigDirOverride(dir)
	defer Reset()

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, FileName()) {
		t.Errorf("path = %s", path)
	}

	// A second call must not clobber user edits.
	if err := os.WriteFile(path, []byte(`runtime: "virtual"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second call error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `runtime: "virtual"` {
		t.Errorf("existing config was overwritten: %s", data)
	}

	resolved, err := ResolvePath(LoadOptions{})
	if err != nil {
		t.Fatalf("ResolvePath() error = %v", err)
	}
	if resolved != path {
		t.Errorf("ResolvePath() = %q, want %q", resolved, path)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	cfg := DefaultConfig()
	cfg.UI.Verbose = true
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !loaded.UI.Verbose {
		t.Error("saved verbose flag not loaded back")
	}
}

func TestResolvePath_NoFile(t *testing.T) {
	t.Parallel()

	got, err := ResolvePath(LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil || got != "" {
		t.Errorf("ResolvePath() = %q, %v; want empty", got, err)
	}
}
