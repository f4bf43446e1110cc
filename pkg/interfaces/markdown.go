package interfaces

import "context"

// MarkdownRenderer converts markdown source into markup. Implementations are
// total: malformed input degrades to literal text and never produces an error.
type MarkdownRenderer interface {
	Render(source string) string
}

// MarkdownService is the configured rendering entry point used by text
// components and the preview renderer.
type MarkdownService interface {
	Render(ctx context.Context, source string) string
	Engine() string
}

// RenderOptions mirrors the runtime markdown configuration.
type RenderOptions struct {
	// Engine selects the renderer: "subset" (default) or "goldmark".
	Engine string
	// Classes selects the class preset for the subset engine: "plain" or "utility".
	Classes string
	// Sanitize runs rendered markup through an HTML policy before returning it.
	Sanitize bool
	// HardWraps is honoured by the goldmark engine only; the subset engine
	// always turns single newlines into line breaks.
	HardWraps bool
}
