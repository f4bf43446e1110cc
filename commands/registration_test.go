package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.DebounceWindow = 0
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	registry := &recordingRegistry{}
	recorder := &recordingDispatcher{}

	result, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{
		Registry:   registry,
		Dispatcher: recorder,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) != 9 {
		t.Fatalf("expected 9 layout handlers, got %d", len(result.Handlers))
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(result.Subscriptions) != len(result.Handlers) {
		t.Fatalf("expected one subscription per handler, got %d", len(result.Subscriptions))
	}

	result.Close()
	for _, sub := range recorder.subscriptions {
		if !sub.unsubscribed {
			t.Fatal("expected Close to release every subscription")
		}
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	result, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be listed even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsJoinsErrors(t *testing.T) {
	boom := errors.New("registry unavailable")
	recorder := &recordingDispatcher{}

	_, err := RegisterContainerCommands(newContainer(t), RegistrationOptions{
		Registry:   &recordingRegistry{err: boom},
		Dispatcher: recorder,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected registry error, got %v", err)
	}
	for _, sub := range recorder.subscriptions {
		if !sub.unsubscribed {
			t.Fatal("expected subscriptions to be released on failure")
		}
	}
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("expected nil container to be a no-op, got %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatalf("expected no handlers, got %d", len(result.Handlers))
	}
}

func TestGoCommandDispatcherRoutesLayoutMessages(t *testing.T) {
	container := newContainer(t)
	ctx := context.Background()
	if _, _, err := container.SessionStore().Open(ctx, "dispatch"); err != nil {
		t.Fatalf("open session: %v", err)
	}

	result, err := RegisterContainerCommands(container, RegistrationOptions{Dispatcher: GoCommandDispatcher{}})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	t.Cleanup(result.Close)

	if err := dispatcher.Dispatch(ctx, layoutcmd.InsertComponentCommand{Session: "dispatch", Kind: "text"}); err != nil {
		t.Fatalf("dispatch insert: %v", err)
	}

	sess, err := container.SessionStore().Get(ctx, "dispatch")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got := sess.Editor.Len(); got != 1 {
		t.Fatalf("expected dispatched insert to reach the session, got %d items", got)
	}
}

func TestGoCommandDispatcherRejectsForeignHandlers(t *testing.T) {
	if _, err := (GoCommandDispatcher{}).RegisterCommand("not a handler"); err == nil {
		t.Fatal("expected error for unsupported handler")
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingDispatcher struct {
	handlers      []any
	subscriptions []*recordingSubscription
	err           error
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.handlers = append(d.handlers, handler)
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
