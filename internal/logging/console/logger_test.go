package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
)

func TestConsoleLoggerWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := logging.WithFields(provider.GetLogger("builder.layout"), map[string]any{"module": "builder.layout"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"session": "landing",
	})
	logger = logger.WithContext(ctx)

	logger.Info("layout.item.inserted", "item_id", "a1", "index", 0, "full_width", true)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO layout.item.inserted full_width=true index=0 item_id=a1 logger=builder.layout module=builder.layout session=landing"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("builder.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLoggerQuotesAndPositionalArgs(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return time.Unix(0, 0) },
	})

	provider.GetLogger("x").Warn("msg", "alt", "two words", "dangling")

	got := strings.TrimSpace(buf.String())
	if !strings.Contains(got, `alt="two words"`) {
		t.Fatalf("expected quoted value, got %s", got)
	}
	if !strings.Contains(got, "arg_1=dangling") {
		t.Fatalf("expected positional field, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, ok := console.ParseLevel("Warning"); !ok || lvl != console.LevelWarn {
		t.Fatalf("expected warn level, got %v %v", lvl, ok)
	}
	if _, ok := console.ParseLevel("verbose"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}
