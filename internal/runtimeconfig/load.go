package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. PAGEBUILDER_HTTP_ADDR.
const EnvPrefix = "PAGEBUILDER"

// Load builds a Config from defaults, an optional config file and environment overrides,
// in increasing order of precedence. An empty path skips the file. The result is validated.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("logging.enabled", cfg.Features.Logger)
	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)

	v.SetDefault("markdown.engine", cfg.Markdown.Engine)
	v.SetDefault("markdown.classes", cfg.Markdown.Classes)
	v.SetDefault("markdown.sanitize", cfg.Markdown.Sanitize)
	v.SetDefault("markdown.hard_wraps", cfg.Markdown.HardWraps)
	v.SetDefault("markdown.extensions", cfg.Markdown.Extensions)

	v.SetDefault("editor.debounce_window", cfg.Editor.DebounceWindow)
	v.SetDefault("editor.deterministic_ids", cfg.Editor.DeterministicIDs)
	v.SetDefault("editor.default_preview_mode", cfg.Editor.DefaultPreviewMode)

	v.SetDefault("http.enabled", cfg.Features.HTTP)
	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.base_path", cfg.HTTP.BasePath)
	v.SetDefault("http.read_header_timeout", cfg.HTTP.ReadHeaderTimeout)
	v.SetDefault("http.shutdown_timeout", cfg.HTTP.ShutdownTimeout)

	v.SetDefault("commands.timeout", cfg.Commands.Timeout)
	v.SetDefault("commands.auto_register_dispatcher", cfg.Commands.AutoRegisterDispatcher)
	v.SetDefault("commands.max_retries", cfg.Commands.MaxRetries)

	v.SetDefault("features.preview", cfg.Features.Preview)
	v.SetDefault("features.markdown_api", cfg.Features.MarkdownAPI)
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Logging: LoggingConfig{
			Provider:  v.GetString("logging.provider"),
			Level:     v.GetString("logging.level"),
			Format:    v.GetString("logging.format"),
			AddSource: v.GetBool("logging.add_source"),
			Focus:     v.GetStringSlice("logging.focus"),
		},
		Markdown: MarkdownConfig{
			Engine:     v.GetString("markdown.engine"),
			Classes:    v.GetString("markdown.classes"),
			Sanitize:   v.GetBool("markdown.sanitize"),
			HardWraps:  v.GetBool("markdown.hard_wraps"),
			Extensions: v.GetStringSlice("markdown.extensions"),
		},
		Editor: EditorConfig{
			DebounceWindow:     v.GetDuration("editor.debounce_window"),
			DeterministicIDs:   v.GetBool("editor.deterministic_ids"),
			DefaultPreviewMode: v.GetString("editor.default_preview_mode"),
		},
		HTTP: HTTPConfig{
			Addr:              v.GetString("http.addr"),
			BasePath:          v.GetString("http.base_path"),
			ReadHeaderTimeout: v.GetDuration("http.read_header_timeout"),
			ShutdownTimeout:   v.GetDuration("http.shutdown_timeout"),
		},
		Commands: CommandsConfig{
			Timeout:                v.GetDuration("commands.timeout"),
			AutoRegisterDispatcher: v.GetBool("commands.auto_register_dispatcher"),
			MaxRetries:             v.GetInt("commands.max_retries"),
		},
		Features: Features{
			Logger:      v.GetBool("logging.enabled"),
			Preview:     v.GetBool("features.preview"),
			MarkdownAPI: v.GetBool("features.markdown_api"),
			HTTP:        v.GetBool("http.enabled"),
		},
	}
}
