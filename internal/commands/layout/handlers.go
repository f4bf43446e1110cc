package layoutcmd

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/session"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

var (
	_ command.Commander[InsertComponentCommand]  = (*commands.Handler[InsertComponentCommand])(nil)
	_ command.Commander[ReorderComponentCommand] = (*commands.Handler[ReorderComponentCommand])(nil)
	_ command.Commander[UpdateComponentCommand]  = (*commands.Handler[UpdateComponentCommand])(nil)
	_ command.Commander[ApplyDropCommand]        = (*commands.Handler[ApplyDropCommand])(nil)
)

// ErrPaletteRequired is returned when handlers are built without a palette.
var ErrPaletteRequired = errors.New("layout command: palette is required")

type deps struct {
	store   session.Store
	palette *layout.Palette
}

func (d deps) editor(ctx context.Context, name string) (*session.Session, error) {
	return d.store.Get(ctx, name)
}

func sessionFields[T interface{ sessionName() string }](msg T) map[string]any {
	return map[string]any{"session": msg.sessionName()}
}

func (c InsertComponentCommand) sessionName() string  { return c.Session }
func (c ReorderComponentCommand) sessionName() string { return c.Session }
func (c ToggleWidthCommand) sessionName() string      { return c.Session }
func (c UpdateComponentCommand) sessionName() string  { return c.Session }
func (c RemoveComponentCommand) sessionName() string  { return c.Session }
func (c ClearLayoutCommand) sessionName() string      { return c.Session }
func (c ApplyDropCommand) sessionName() string        { return c.Session }
func (c SelectComponentCommand) sessionName() string  { return c.Session }
func (c SetPreviewModeCommand) sessionName() string   { return c.Session }

type sessionMessage interface {
	command.Message
	sessionName() string
}

func newHandler[T sessionMessage](operation string, logger interfaces.Logger, timeout time.Duration, exec command.CommandFunc[T], extra []commands.HandlerOption[T]) *commands.Handler[T] {
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithMessageFields[T](sessionFields[T]),
		commands.WithTelemetry[T](commands.DefaultTelemetry[T](logger)),
	}
	if timeout > 0 {
		opts = append(opts, commands.WithTimeout[T](timeout))
	}
	return commands.NewHandler(exec, append(opts, extra...)...)
}

func fill(result *Result, sess *session.Session, applied bool, item *layout.Item) {
	if result == nil {
		return
	}
	result.Applied = applied
	result.Item = item
	result.Snapshot = sess.Editor.Snapshot()
}

func (d deps) insert(ctx context.Context, msg InsertComponentCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	kind, _ := layout.ParseKind(msg.Kind)
	item := sess.Editor.InsertFromPalette(kind, msg.Index)
	if msg.Select {
		sess.Editor.Select(item.ID)
	}
	fill(msg.Result, sess, true, &item)
	return nil
}

func (d deps) reorder(ctx context.Context, msg ReorderComponentCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	fill(msg.Result, sess, sess.Editor.Reorder(msg.From, msg.To), nil)
	return nil
}

func (d deps) toggleWidth(ctx context.Context, msg ToggleWidthCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	applied := sess.Editor.ToggleFullWidth(msg.ItemID)
	fill(msg.Result, sess, applied, lookup(sess, msg.ItemID))
	return nil
}

func (d deps) update(ctx context.Context, msg UpdateComponentCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	current, ok := sess.Editor.Item(msg.ItemID)
	if !ok {
		fill(msg.Result, sess, false, nil)
		return nil
	}
	payload, err := d.palette.Decode(current.Kind, msg.Payload)
	if err != nil {
		return err
	}

	if msg.Debounce {
		sess.Committer.Stage(msg.ItemID, payload)
		fill(msg.Result, sess, false, &current)
		if msg.Result != nil {
			msg.Result.Staged = true
		}
		return nil
	}
	sess.Committer.Discard(msg.ItemID)
	applied := sess.Editor.UpdateData(msg.ItemID, payload)
	fill(msg.Result, sess, applied, lookup(sess, msg.ItemID))
	return nil
}

func (d deps) remove(ctx context.Context, msg RemoveComponentCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	fill(msg.Result, sess, sess.Editor.Remove(msg.ItemID), nil)
	return nil
}

func (d deps) clear(ctx context.Context, msg ClearLayoutCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	sess.Committer.Stop()
	fill(msg.Result, sess, sess.Editor.Clear(), nil)
	return nil
}

func (d deps) drop(ctx context.Context, msg ApplyDropCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	outcome := sess.Editor.ApplyDrop(msg.Drop)
	fill(msg.Result, sess, outcome.Action != layout.DropDiscarded, outcome.Item)
	if msg.Result != nil {
		msg.Result.Action = outcome.Action
	}
	return nil
}

func (d deps) selectItem(ctx context.Context, msg SelectComponentCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	if msg.ItemID == "" {
		sess.Editor.Deselect()
		fill(msg.Result, sess, true, nil)
		return nil
	}
	applied := sess.Editor.Select(msg.ItemID)
	fill(msg.Result, sess, applied, lookup(sess, msg.ItemID))
	return nil
}

func (d deps) previewMode(ctx context.Context, msg SetPreviewModeCommand) error {
	sess, err := d.editor(ctx, msg.Session)
	if err != nil {
		return err
	}
	mode, _ := layout.ParsePreviewMode(msg.Mode)
	fill(msg.Result, sess, sess.Editor.SetPreviewMode(mode), nil)
	return nil
}

func lookup(sess *session.Session, id string) *layout.Item {
	item, ok := sess.Editor.Item(id)
	if !ok {
		return nil
	}
	return &item
}
