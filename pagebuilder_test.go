package pagebuilder_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-pagebuilder"
	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/layout"
)

func TestModuleBuildsServices(t *testing.T) {
	module, err := pagebuilder.New(pagebuilder.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	if module.Markdown() == nil || module.Palette() == nil || module.Sessions() == nil {
		t.Fatal("expected markdown, palette and sessions to be wired")
	}
	if module.Preview() == nil {
		t.Fatal("expected preview renderer by default")
	}
	if got := module.Markdown().Render(context.Background(), "**hi**"); got != "<p><strong>hi</strong></p>" {
		t.Fatalf("unexpected markdown output %q", got)
	}
}

func TestModuleCloseFlushesPendingEdits(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Editor.DebounceWindow = time.Hour
	module, err := pagebuilder.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()

	sess, _, err := module.Sessions().Open(ctx, "home")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	item := sess.Editor.InsertFromPalette(layout.KindText, 0)
	sess.Committer.Stage(item.ID, layout.TextPayload{Content: "draft"})

	if err := module.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	current, ok := sess.Editor.Item(item.ID)
	if !ok {
		t.Fatal("expected item to survive close")
	}
	if got := current.Payload.(layout.TextPayload).Content; got != "draft" {
		t.Fatalf("expected staged edit to be flushed, got %q", got)
	}
	if got := len(module.Sessions().List(ctx)); got != 0 {
		t.Fatalf("expected sessions to be dropped, got %d", got)
	}
}

func TestModuleAutoRegistersDispatcher(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Commands.AutoRegisterDispatcher = true
	module, err := pagebuilder.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	ctx := context.Background()
	t.Cleanup(func() { _ = module.Close(ctx) })

	if _, _, err := module.Sessions().Open(ctx, "auto"); err != nil {
		t.Fatalf("open session: %v", err)
	}
	msg := layoutcmd.SetPreviewModeCommand{Session: "auto", Mode: "mobile"}
	if err := dispatcher.Dispatch(ctx, msg); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	sess, err := module.Sessions().Get(ctx, "auto")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got := sess.Editor.PreviewMode(); got != layout.PreviewMobile {
		t.Fatalf("expected mobile preview mode, got %q", got)
	}
}

func TestModuleHandler(t *testing.T) {
	module, err := pagebuilder.New(pagebuilder.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/builder/api/markdown/render", strings.NewReader(`{"source":"# Title"}`))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		HTML   string `json:"html"`
		Engine string `json:"engine"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.HTML != "<h1>Title</h1>" || body.Engine != "subset" {
		t.Fatalf("unexpected render response %+v", body)
	}
}
