package di_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/di"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

type stubMarkdown struct{}

func (stubMarkdown) Render(_ context.Context, source string) string { return "<stub>" + source + "</stub>" }
func (stubMarkdown) Engine() string                                 { return "stub" }

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func newContainer(t *testing.T, cfg runtimeconfig.Config, opts ...di.Option) *di.Container {
	t.Helper()
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	return container
}

func TestContainerDefaults(t *testing.T) {
	container := newContainer(t, runtimeconfig.DefaultConfig())

	if got := container.MarkdownService().Engine(); got != "subset" {
		t.Fatalf("expected subset engine, got %q", got)
	}
	if container.PreviewRenderer() == nil {
		t.Fatal("expected preview renderer when preview feature is enabled")
	}
	if got := len(container.Palette().Entries()); got != 2 {
		t.Fatalf("expected 2 palette entries, got %d", got)
	}
	if got := len(container.Commands().Handlers()); got != 9 {
		t.Fatalf("expected 9 layout handlers, got %d", got)
	}
	if container.SessionStore() == nil || container.API() == nil {
		t.Fatal("expected session store and api to be wired")
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Engine = "textile"

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrMarkdownEngineUnknown) {
		t.Fatalf("expected ErrMarkdownEngineUnknown, got %v", err)
	}
}

func TestContainerGoldmarkEngine(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Engine = "goldmark"
	cfg.Markdown.Extensions = []string{"table"}

	container := newContainer(t, cfg)
	if got := container.MarkdownService().Engine(); got != "goldmark" {
		t.Fatalf("expected goldmark engine, got %q", got)
	}
}

func TestContainerMarkdownServiceOverride(t *testing.T) {
	container := newContainer(t, runtimeconfig.DefaultConfig(), di.WithMarkdownService(stubMarkdown{}))

	if got := container.MarkdownService().Engine(); got != "stub" {
		t.Fatalf("expected override engine, got %q", got)
	}
}

func TestContainerRegistersLayoutCommands(t *testing.T) {
	registry := &recordingRegistry{}
	container := newContainer(t, runtimeconfig.DefaultConfig(), di.WithCommandRegistry(registry))

	if len(registry.handlers) != len(container.Commands().Handlers()) {
		t.Fatalf("expected registry to record all handlers, got %d", len(registry.handlers))
	}
}

func TestContainerCommandsShareSessionStore(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.DebounceWindow = 0
	container := newContainer(t, cfg)
	ctx := context.Background()

	if _, _, err := container.SessionStore().Open(ctx, "Landing Page"); err != nil {
		t.Fatalf("open session: %v", err)
	}

	result := &layoutcmd.Result{}
	err := container.Commands().Insert.Execute(ctx, layoutcmd.InsertComponentCommand{
		Session: "landing-page",
		Kind:    "image",
		Index:   0,
		Result:  result,
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !result.Applied || result.Snapshot.Len() != 1 {
		t.Fatalf("expected one item after insert, got %+v", result)
	}

	sess, err := container.SessionStore().Get(ctx, "landing-page")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got := sess.Editor.Len(); got != 1 {
		t.Fatalf("expected store session to see the insert, got %d items", got)
	}
}

func TestContainerDeterministicIDs(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Editor.DeterministicIDs = true
	ctx := context.Background()

	ids := make([]string, 0, 2)
	for range 2 {
		container := newContainer(t, cfg)
		if _, _, err := container.SessionStore().Open(ctx, "home"); err != nil {
			t.Fatalf("open session: %v", err)
		}
		result := &layoutcmd.Result{}
		if err := container.Commands().Insert.Execute(ctx, layoutcmd.InsertComponentCommand{Session: "home", Kind: "text", Result: result}); err != nil {
			t.Fatalf("insert: %v", err)
		}
		ids = append(ids, result.Item.ID)
	}
	if ids[0] != ids[1] {
		t.Fatalf("expected deterministic item ids to match, got %q and %q", ids[0], ids[1])
	}
}

func TestContainerHandlerServesRoutes(t *testing.T) {
	container := newContainer(t, runtimeconfig.DefaultConfig())
	handler, err := container.Handler()
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/builder/api/palette", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected palette 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/builder/api/sessions", strings.NewReader(`{"name":"home"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected session 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/builder/api/sessions/home/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected preview 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No components to preview") {
		t.Fatalf("expected empty preview placeholder, got %s", rec.Body.String())
	}
}

func TestContainerPreviewDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Preview = false
	cfg.Features.MarkdownAPI = false
	cfg.HTTP.BasePath = "/api"

	container := newContainer(t, cfg)
	if container.PreviewRenderer() != nil {
		t.Fatal("expected nil preview renderer when preview feature is disabled")
	}

	handler, err := container.Handler()
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/markdown/render", strings.NewReader(`{"source":"x"}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected markdown route to be unmounted, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/palette", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected palette under custom base path, got %d", rec.Code)
	}
}
