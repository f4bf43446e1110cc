package markdown_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/markdown"
)

func TestSplitFrontMatterYAML(t *testing.T) {
	source := "---\ntitle: Landing\nsummary: Spring launch\ntags: [hero, promo]\n---\n# Welcome\n"

	meta, body, err := markdown.SplitFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if meta.Title != "Landing" || meta.Summary != "Spring launch" || !slices.Equal(meta.Tags, []string{"hero", "promo"}) {
		t.Fatalf("unexpected front matter %#v", meta)
	}
	if got := strings.TrimSpace(string(body)); got != "# Welcome" {
		t.Fatalf("expected body without front matter, got %q", got)
	}
	if got := markdown.Render(string(body)); got != "<h1>Welcome</h1>" {
		t.Fatalf("unexpected markup %q", got)
	}
}

func TestSplitFrontMatterTOML(t *testing.T) {
	source := "+++\ntitle = \"Docs\"\ndraft = true\n+++\nbody text\n"

	meta, body, err := markdown.SplitFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if meta.Title != "Docs" || !meta.Draft {
		t.Fatalf("unexpected front matter %#v", meta)
	}
	if got := strings.TrimSpace(string(body)); got != "body text" {
		t.Fatalf("unexpected body %q", got)
	}
}

func TestSplitFrontMatterWithoutBlockKeepsSource(t *testing.T) {
	source := "# Title\n- item"

	meta, body, err := markdown.SplitFrontMatter([]byte(source))
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if !meta.IsZero() {
		t.Fatalf("expected empty front matter, got %#v", meta)
	}
	if strings.TrimSpace(string(body)) != source {
		t.Fatalf("expected source unchanged, got %q", body)
	}
}

func TestSplitFrontMatterRejectsMalformedBlock(t *testing.T) {
	if _, _, err := markdown.SplitFrontMatter([]byte("---\ntitle: [unclosed\n---\nbody")); err == nil {
		t.Fatal("expected error for malformed front matter")
	}
}
