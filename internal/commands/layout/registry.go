package layoutcmd

import (
	"errors"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/session"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the layout command handlers produced by RegisterLayoutCommands.
type HandlerSet struct {
	Insert      *commands.Handler[InsertComponentCommand]
	Reorder     *commands.Handler[ReorderComponentCommand]
	ToggleWidth *commands.Handler[ToggleWidthCommand]
	Update      *commands.Handler[UpdateComponentCommand]
	Remove      *commands.Handler[RemoveComponentCommand]
	Clear       *commands.Handler[ClearLayoutCommand]
	Drop        *commands.Handler[ApplyDropCommand]
	Select      *commands.Handler[SelectComponentCommand]
	PreviewMode *commands.Handler[SetPreviewModeCommand]
}

// Handlers lists every handler in the set in registration order.
func (s *HandlerSet) Handlers() []any {
	if s == nil {
		return nil
	}
	return []any{s.Insert, s.Reorder, s.ToggleWidth, s.Update, s.Remove, s.Clear, s.Drop, s.Select, s.PreviewMode}
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	timeout    time.Duration
	insertOpts []commands.HandlerOption[InsertComponentCommand]
	updateOpts []commands.HandlerOption[UpdateComponentCommand]
	clearOpts  []commands.HandlerOption[ClearLayoutCommand]
}

// WithTimeout bounds every layout handler. Zero keeps the command default.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *options) {
		cfg.timeout = timeout
	}
}

// WithInsertHandlerOptions forwards options to the insert handler.
func WithInsertHandlerOptions(opts ...commands.HandlerOption[InsertComponentCommand]) Option {
	return func(cfg *options) {
		cfg.insertOpts = append(cfg.insertOpts, opts...)
	}
}

// WithUpdateHandlerOptions forwards options to the update handler.
func WithUpdateHandlerOptions(opts ...commands.HandlerOption[UpdateComponentCommand]) Option {
	return func(cfg *options) {
		cfg.updateOpts = append(cfg.updateOpts, opts...)
	}
}

// WithClearHandlerOptions forwards options to the clear handler.
func WithClearHandlerOptions(opts ...commands.HandlerOption[ClearLayoutCommand]) Option {
	return func(cfg *options) {
		cfg.clearOpts = append(cfg.clearOpts, opts...)
	}
}

// RegisterLayoutCommands builds the layout handlers and registers them with reg when it is
// non-nil. The handlers are returned so adapters can execute them directly.
func RegisterLayoutCommands(reg CommandRegistry, store session.Store, palette *layout.Palette, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if store == nil {
		return nil, errors.New("layout command registration: session store is nil")
	}
	if palette == nil {
		return nil, ErrPaletteRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "layout")
	d := deps{store: store, palette: palette}

	set := &HandlerSet{
		Insert:      newHandler[InsertComponentCommand]("layout.insert", logger, cfg.timeout, d.insert, cfg.insertOpts),
		Reorder:     newHandler[ReorderComponentCommand]("layout.reorder", logger, cfg.timeout, d.reorder, nil),
		ToggleWidth: newHandler[ToggleWidthCommand]("layout.toggle_width", logger, cfg.timeout, d.toggleWidth, nil),
		Update:      newHandler[UpdateComponentCommand]("layout.update", logger, cfg.timeout, d.update, cfg.updateOpts),
		Remove:      newHandler[RemoveComponentCommand]("layout.remove", logger, cfg.timeout, d.remove, nil),
		Clear:       newHandler[ClearLayoutCommand]("layout.clear", logger, cfg.timeout, d.clear, cfg.clearOpts),
		Drop:        newHandler[ApplyDropCommand]("layout.drop", logger, cfg.timeout, d.drop, nil),
		Select:      newHandler[SelectComponentCommand]("layout.select", logger, cfg.timeout, d.selectItem, nil),
		PreviewMode: newHandler[SetPreviewModeCommand]("layout.preview_mode", logger, cfg.timeout, d.previewMode, nil),
	}

	if reg != nil {
		for _, handler := range set.Handlers() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
