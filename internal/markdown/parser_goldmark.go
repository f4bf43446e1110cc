package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// GoldmarkOptions configures the goldmark engine.
type GoldmarkOptions struct {
	Extensions []string
	HardWraps  bool
	// SafeMode stops raw HTML in the source from reaching the output.
	SafeMode bool
}

// GoldmarkRenderer renders full CommonMark (plus GFM extensions) through
// goldmark. The engine is built once and reused; goldmark.Markdown is safe
// for concurrent Convert calls.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
	logger interfaces.Logger
}

// NewGoldmarkRenderer builds the engine. A nil logger is replaced by no-op.
func NewGoldmarkRenderer(opts GoldmarkOptions, logger interfaces.Logger) *GoldmarkRenderer {
	return &GoldmarkRenderer{
		engine: newGoldmarkEngine(opts),
		logger: logging.Ensure(logger),
	}
}

// Render converts source. Conversion errors are logged and yield "".
func (g *GoldmarkRenderer) Render(source string) string {
	if source == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := g.engine.Convert([]byte(source), &buf); err != nil {
		g.logger.Warn("markdown.goldmark.convert_failed", "error", err, "source_bytes", len(source))
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}

func newGoldmarkEngine(opts GoldmarkOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// collectExtensions maps names to extenders, ignoring unknown and repeated
// names. No names selects GFM.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := seen[key]; dup || key == "" {
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
			seen[key] = struct{}{}
		}
	}
	return extenders
}
