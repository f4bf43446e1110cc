package di

import (
	"fmt"
	"net/http"
	"strings"

	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	httpapi "github.com/goliatone/go-pagebuilder/internal/http"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/internal/preview"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/session"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	registry       layoutcmd.CommandRegistry

	markdownSvc interfaces.MarkdownService
	palette     *layout.Palette
	sessions    session.Store
	commands    *layoutcmd.HandlerSet
	preview     *preview.Renderer
	api         *httpapi.BuilderAPI
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithMarkdownService overrides the markdown service built from the markdown config.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		if svc != nil {
			c.markdownSvc = svc
		}
	}
}

// WithPalette replaces the default text/image palette.
func WithPalette(palette *layout.Palette) Option {
	return func(c *Container) {
		if palette != nil {
			c.palette = palette
		}
	}
}

// WithSessionStore overrides the in-memory session store.
func WithSessionStore(store session.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.sessions = store
		}
	}
}

// WithCommandRegistry registers every layout handler with reg while the container is built.
func WithCommandRegistry(reg layoutcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer creates a container using the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	c.configureSessions()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}
	if err := c.configurePreview(); err != nil {
		return nil, err
	}
	c.configureAPI()

	logging.ModuleLogger(c.loggerProvider, "builder").Debug("container.configured",
		"markdown_engine", c.markdownSvc.Engine(),
		"preview", c.preview != nil,
		"base_path", cfg.HTTP.BasePath,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	cfg := c.Config.Logging
	if !c.Config.Features.Logger {
		c.loggerProvider = noopProvider{}
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure gologger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil {
		return nil
	}

	cfg := c.Config.Markdown
	svc, err := markdown.NewService(interfaces.RenderOptions{
		Engine:    cfg.Engine,
		Classes:   cfg.Classes,
		Sanitize:  cfg.Sanitize,
		HardWraps: cfg.HardWraps,
	},
		markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
		markdown.WithGoldmarkExtensions(cfg.Extensions...),
	)
	if err != nil {
		return fmt.Errorf("configure markdown service: %w", err)
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureSessions() {
	if c.palette == nil {
		c.palette = layout.DefaultPalette()
	}
	if c.sessions != nil {
		return
	}

	storeOpts := []session.StoreOption{
		session.WithLogger(logging.SessionLogger(c.loggerProvider)),
		session.WithCommitWindow(c.Config.Editor.DebounceWindow),
		session.WithDeterministicIDs(c.Config.Editor.DeterministicIDs),
	}
	if mode, ok := layout.ParsePreviewMode(c.Config.Editor.DefaultPreviewMode); ok {
		storeOpts = append(storeOpts, session.WithDefaultPreviewMode(mode))
	}
	c.sessions = session.NewStore(storeOpts...)
}

func (c *Container) configureCommands() error {
	set, err := layoutcmd.RegisterLayoutCommands(c.registry, c.sessions, c.palette, c.loggerProvider,
		layoutcmd.WithTimeout(c.Config.Commands.Timeout),
	)
	if err != nil {
		return fmt.Errorf("configure layout commands: %w", err)
	}
	c.commands = set
	return nil
}

func (c *Container) configurePreview() error {
	if !c.Config.Features.Preview {
		return nil
	}
	renderer, err := preview.NewRenderer(c.markdownSvc, preview.WithLogger(logging.PreviewLogger(c.loggerProvider)))
	if err != nil {
		return fmt.Errorf("configure preview renderer: %w", err)
	}
	c.preview = renderer
	return nil
}

func (c *Container) configureAPI() {
	opts := []httpapi.BuilderOption{
		httpapi.WithBasePath(c.Config.HTTP.BasePath),
		httpapi.WithSessionStore(c.sessions),
		httpapi.WithPalette(c.palette),
		httpapi.WithCommands(c.commands),
		httpapi.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.preview != nil {
		opts = append(opts, httpapi.WithPreviewRenderer(c.preview))
	}
	if c.Config.Features.MarkdownAPI {
		opts = append(opts, httpapi.WithMarkdownService(c.markdownSvc))
	}
	c.api = httpapi.NewBuilderAPI(opts...)
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

// LoggerProvider returns the provider used to build module loggers.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownService returns the configured text renderer.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// Palette returns the component palette.
func (c *Container) Palette() *layout.Palette {
	return c.palette
}

// SessionStore returns the editing session store.
func (c *Container) SessionStore() session.Store {
	return c.sessions
}

// Commands returns the layout command handlers.
func (c *Container) Commands() *layoutcmd.HandlerSet {
	return c.commands
}

// PreviewRenderer returns the preview renderer, or nil when previews are disabled.
func (c *Container) PreviewRenderer() *preview.Renderer {
	return c.preview
}

// API returns the HTTP adapter.
func (c *Container) API() *httpapi.BuilderAPI {
	return c.api
}

// Handler mounts the HTTP adapter on a fresh mux.
func (c *Container) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := c.api.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}
