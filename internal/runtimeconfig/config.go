package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrLoggingProviderRequired = errors.New("builder config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("builder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("builder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("builder config: logging format is invalid")
var ErrMarkdownEngineUnknown = errors.New("builder config: markdown engine is invalid")
var ErrMarkdownClassesUnknown = errors.New("builder config: markdown class preset is invalid")

// ErrMarkdownExtensionsRequireGoldmark keeps extension lists off the subset engine.
var ErrMarkdownExtensionsRequireGoldmark = errors.New("builder config: markdown extensions require the goldmark engine")

// ErrDebounceWindowNegative rejects negative form commit windows.
var ErrDebounceWindowNegative = errors.New("builder config: editor debounce window must be zero or positive")

// ErrPreviewModeInvalid rejects unknown default preview modes.
var ErrPreviewModeInvalid = errors.New("builder config: editor default preview mode is invalid")

// ErrMaxRetriesNegative rejects negative dispatcher retry counts.
var ErrMaxRetriesNegative = errors.New("builder config: command max retries must be zero or positive")

// ErrHTTPAddrRequired is returned when the HTTP adapter is enabled without an address.
var ErrHTTPAddrRequired = errors.New("builder config: http address is required when the http adapter is enabled")

// Config aggregates feature flags and adapter settings for the page builder.
type Config struct {
	Logging  LoggingConfig
	Markdown MarkdownConfig
	Editor   EditorConfig
	HTTP     HTTPConfig
	Commands CommandsConfig
	Features Features
}

// Features toggles module functionality.
type Features struct {
	Logger      bool
	Preview     bool
	MarkdownAPI bool
	HTTP        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// MarkdownConfig selects the text component renderer.
type MarkdownConfig struct {
	Engine     string
	Classes    string
	Sanitize   bool
	HardWraps  bool
	Extensions []string
}

// EditorConfig controls layout editing sessions.
type EditorConfig struct {
	DebounceWindow     time.Duration
	DeterministicIDs   bool
	DefaultPreviewMode string
}

// HTTPConfig configures the optional HTTP adapter.
type HTTPConfig struct {
	Addr              string
	BasePath          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout                time.Duration
	AutoRegisterDispatcher bool
	// MaxRetries is how often the dispatcher re-runs a failed command.
	MaxRetries int
}

// DefaultConfig returns the defaults used by the page builder binary.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Markdown: MarkdownConfig{
			Engine:  "subset",
			Classes: "plain",
		},
		Editor: EditorConfig{
			DebounceWindow:     500 * time.Millisecond,
			DefaultPreviewMode: "desktop",
		},
		HTTP: HTTPConfig{
			Addr:              ":8080",
			BasePath:          "/builder/api",
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Commands: CommandsConfig{
			Timeout: 5 * time.Second,
		},
		Features: Features{
			Preview:     true,
			MarkdownAPI: true,
			HTTP:        true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	engine := strings.ToLower(strings.TrimSpace(cfg.Markdown.Engine))
	if !isSupportedEngine(engine) {
		return fmt.Errorf("%w: %s", ErrMarkdownEngineUnknown, cfg.Markdown.Engine)
	}
	if len(cfg.Markdown.Extensions) > 0 && engine != "goldmark" {
		return ErrMarkdownExtensionsRequireGoldmark
	}
	if classes := strings.ToLower(strings.TrimSpace(cfg.Markdown.Classes)); classes != "" && classes != "plain" && classes != "utility" {
		return fmt.Errorf("%w: %s", ErrMarkdownClassesUnknown, cfg.Markdown.Classes)
	}
	if cfg.Editor.DebounceWindow < 0 {
		return ErrDebounceWindowNegative
	}
	if mode := strings.ToLower(strings.TrimSpace(cfg.Editor.DefaultPreviewMode)); mode != "" && mode != "desktop" && mode != "mobile" {
		return fmt.Errorf("%w: %s", ErrPreviewModeInvalid, cfg.Editor.DefaultPreviewMode)
	}
	if cfg.Commands.MaxRetries < 0 {
		return ErrMaxRetriesNegative
	}
	if cfg.Features.HTTP && strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedEngine(engine string) bool {
	switch engine {
	case "", "subset", "goldmark":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
