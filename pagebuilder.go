package pagebuilder

import (
	"context"
	"net/http"

	"github.com/goliatone/go-command/runner"
	"github.com/goliatone/go-pagebuilder/commands"
	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/preview"
	"github.com/goliatone/go-pagebuilder/internal/session"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// SessionStore exports the editing session store contract.
type SessionStore = session.Store

// Palette exports the component palette.
type Palette = layout.Palette

// LayoutCommands exports the layout command handler set.
type LayoutCommands = layoutcmd.HandlerSet

// PreviewRenderer exports the preview renderer.
type PreviewRenderer = preview.Renderer

// Module represents the top level page builder runtime façade.
type Module struct {
	container    *di.Container
	registration *commands.RegistrationResult
}

// New constructs a page builder module using the provided configuration and optional DI overrides.
// When Commands.AutoRegisterDispatcher is set the layout handlers are subscribed to the
// go-command dispatcher; call Close to release them.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}

	m := &Module{container: container}
	if cfg.Commands.AutoRegisterDispatcher {
		registration, err := commands.RegisterContainerCommands(container, commands.RegistrationOptions{
			Dispatcher: commands.GoCommandDispatcher{
				RunnerOptions: []runner.Option{runner.WithMaxRetries(cfg.Commands.MaxRetries)},
			},
		})
		if err != nil {
			return nil, err
		}
		m.registration = registration
	}
	return m, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markdown returns the text component renderer.
func (m *Module) Markdown() interfaces.MarkdownService {
	return m.container.MarkdownService()
}

// Palette returns the component palette.
func (m *Module) Palette() *Palette {
	return m.container.Palette()
}

// Sessions returns the editing session store.
func (m *Module) Sessions() SessionStore {
	return m.container.SessionStore()
}

// Commands returns the layout command handlers.
func (m *Module) Commands() *LayoutCommands {
	return m.container.Commands()
}

// Preview returns the preview renderer, or nil when previews are disabled.
func (m *Module) Preview() *PreviewRenderer {
	return m.container.PreviewRenderer()
}

// Handler returns the HTTP adapter mounted on its own mux.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.Handler()
}

// Close releases dispatcher subscriptions, then flushes pending form edits and drops
// every open session.
func (m *Module) Close(ctx context.Context) error {
	if m == nil || m.container == nil {
		return nil
	}
	m.registration.Close()
	m.registration = nil

	store := m.container.SessionStore()
	for _, info := range store.List(ctx) {
		if err := store.Close(ctx, info.Name); err != nil {
			return err
		}
	}
	return nil
}
