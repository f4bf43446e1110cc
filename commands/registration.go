package commands

import (
	"errors"

	"github.com/goliatone/go-command/runner"
	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/di"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or other transports.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered.
type RegistrationOptions struct {
	Registry   CommandRegistry
	Dispatcher CommandDispatcher
}

// RegistrationResult captures the registered handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// Close releases every dispatcher subscription.
func (r *RegistrationResult) Close() {
	if r == nil {
		return
	}
	for _, sub := range r.Subscriptions {
		sub.Unsubscribe()
	}
	r.Subscriptions = nil
}

// GoCommandDispatcher subscribes layout handlers to the go-command dispatcher.
// RunnerOptions apply to every subscription.
type GoCommandDispatcher struct {
	RunnerOptions []runner.Option
}

// RegisterCommand satisfies CommandDispatcher.
func (d GoCommandDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	sub, err := layoutcmd.Subscribe(handler, d.RunnerOptions...)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// RegisterContainerCommands hands the layout handlers built by the container to the
// optional registry and dispatcher integrations. Registration errors are joined so one
// failing handler does not hide the rest.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	handlers := container.Commands().Handlers()
	result := &RegistrationResult{
		Handlers:      make([]any, 0, len(handlers)),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	if errs != nil {
		result.Close()
		return nil, errs
	}
	return result, nil
}
