package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := runtimeconfig.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	defaults := runtimeconfig.DefaultConfig()
	if cfg.HTTP.Addr != defaults.HTTP.Addr || cfg.Editor.DebounceWindow != defaults.Editor.DebounceWindow {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Markdown.Engine != "subset" || !cfg.Features.Preview {
		t.Fatalf("expected default markdown and preview settings, got %+v", cfg)
	}
}

func TestLoadReadsTOMLFile(t *testing.T) {
	path := writeConfig(t, "builder.toml", `
[logging]
enabled = true
provider = "gologger"
level = "debug"
format = "json"

[markdown]
engine = "goldmark"
extensions = ["table", "strikethrough"]
sanitize = true

[editor]
debounce_window = "250ms"
deterministic_ids = true
default_preview_mode = "mobile"

[http]
addr = "127.0.0.1:9090"
base_path = "/api"
`)

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !cfg.Features.Logger || cfg.Logging.Provider != "gologger" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Markdown.Engine != "goldmark" || !cfg.Markdown.Sanitize {
		t.Fatalf("unexpected markdown config %+v", cfg.Markdown)
	}
	if !slices.Equal(cfg.Markdown.Extensions, []string{"table", "strikethrough"}) {
		t.Fatalf("unexpected extensions %v", cfg.Markdown.Extensions)
	}
	if cfg.Editor.DebounceWindow != 250*time.Millisecond || !cfg.Editor.DeterministicIDs || cfg.Editor.DefaultPreviewMode != "mobile" {
		t.Fatalf("unexpected editor config %+v", cfg.Editor)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9090" || cfg.HTTP.BasePath != "/api" {
		t.Fatalf("unexpected http config %+v", cfg.HTTP)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("expected unset keys to keep defaults, got %s", cfg.HTTP.ShutdownTimeout)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "builder.toml", `
[http]
addr = ":7000"
`)
	t.Setenv("PAGEBUILDER_HTTP_ADDR", ":7100")
	t.Setenv("PAGEBUILDER_EDITOR_DEBOUNCE_WINDOW", "1s")
	t.Setenv("PAGEBUILDER_COMMANDS_MAX_RETRIES", "2")

	cfg, err := runtimeconfig.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTP.Addr != ":7100" {
		t.Fatalf("expected env addr to win, got %q", cfg.HTTP.Addr)
	}
	if cfg.Editor.DebounceWindow != time.Second {
		t.Fatalf("expected env debounce window, got %s", cfg.Editor.DebounceWindow)
	}
	if cfg.Commands.MaxRetries != 2 {
		t.Fatalf("expected env max retries, got %d", cfg.Commands.MaxRetries)
	}
}

func TestLoadValidatesResult(t *testing.T) {
	path := writeConfig(t, "builder.toml", `
[editor]
default_preview_mode = "tablet"
`)

	if _, err := runtimeconfig.Load(path); !errors.Is(err, runtimeconfig.ErrPreviewModeInvalid) {
		t.Fatalf("expected ErrPreviewModeInvalid, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := runtimeconfig.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
