package layoutcmd

import (
	"fmt"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/goliatone/go-pagebuilder/internal/commands"
)

// Subscription releases a dispatcher subscription.
type Subscription interface {
	Unsubscribe()
}

// Subscribe attaches a layout handler to the go-command dispatcher so messages sent through
// dispatcher.Dispatch reach it. opts configure the go-command runner (retries, timeouts).
// Handlers outside the layout set are rejected.
func Subscribe(handler any, opts ...runner.Option) (Subscription, error) {
	switch h := handler.(type) {
	case *commands.Handler[InsertComponentCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[ReorderComponentCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[ToggleWidthCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[UpdateComponentCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[RemoveComponentCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[ClearLayoutCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[ApplyDropCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[SelectComponentCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	case *commands.Handler[SetPreviewModeCommand]:
		return dispatcher.SubscribeCommand(h, opts...), nil
	default:
		return nil, fmt.Errorf("layout commands: cannot subscribe handler %T", handler)
	}
}
