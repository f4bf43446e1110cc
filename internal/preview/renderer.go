package preview

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// PlaceholderImage is shown when an image source is rejected or fails to load.
const PlaceholderImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iNDAwIiBoZWlnaHQ9IjIwMCIgdmlld0JveD0iMCAwIDQwMCAyMDAiIGZpbGw9Im5vbmUiIHhtbG5zPSJodHRwOi8vd3d3LnczLm9yZy8yMDAwL3N2ZyI+CjxyZWN0IHdpZHRoPSI0MDAiIGhlaWdodD0iMjAwIiBmaWxsPSIjRjVGNUY1Ii8+CjxwYXRoIGQ9Ik0xNzUgNzVMMjI1IDEyNUwxNzUgMTc1SDE1MEwxMzAgMTU1TDEyMCAxNjVMMTEwIDE1NUwxMDAuNSAxNjQuNUw5MCAxNTRMOTAgNzVIMTc1WiIgZmlsbD0iI0Q5RDlEOSIvPgo8Y2lyY2xlIGN4PSIxNDAiIGN5PSIxMDAiIHI9IjEwIiBmaWxsPSIjRDlEOUQ5Ii8+Cjx0ZXh0IHg9IjIwMCIgeT0iMTA1IiBmb250LWZhbWlseT0iQXJpYWwiIGZvbnQtc2l6ZT0iMTQiIGZpbGw9IiM4QzhDOEMiPkltYWdlIG5vdCBmb3VuZDwvdGV4dD4KPHN2Zz4K"

const pageTemplate = `{{define "preview"}}<div class="pagebuilder-preview {{.Frame}}" data-preview-mode="{{.Mode}}">
{{- if not .Items}}<div class="pagebuilder-preview-empty"><p>No components to preview</p><p>Add some components to see the preview</p></div>
{{- else}}<div class="{{.Layout}}">
{{- range .Items}}
<div class="{{.Width}}" data-item-id="{{.ID}}" data-kind="{{.Kind}}">{{template "item" .}}</div>
{{- end}}
</div>{{end}}</div>{{end}}
{{define "item"}}{{if eq .Kind "image"}}<div class="pagebuilder-image"><img src="{{.Src}}" alt="{{.Alt}}" class="w-full h-auto" onerror="this.onerror=null;this.src={{.Fallback}}"></div>
{{- else}}<div class="pagebuilder-text">{{.HTML}}</div>{{end}}{{end}}`

type pageView struct {
	Mode   layout.PreviewMode
	Frame  string
	Layout string
	Items  []itemView
}

type itemView struct {
	ID       string
	Kind     layout.Kind
	Width    string
	HTML     template.HTML
	Src      template.URL
	Alt      string
	Fallback string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithLogger sets the renderer logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns layout snapshots into self-contained HTML fragments.
type Renderer struct {
	markdown interfaces.MarkdownService
	tmpl     *template.Template
	logger   interfaces.Logger
}

// NewRenderer builds a renderer. A nil markdown service falls back to the
// plain subset renderer.
func NewRenderer(md interfaces.MarkdownService, opts ...Option) (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("preview: parse template: %w", err)
	}
	r := &Renderer{markdown: md, tmpl: tmpl, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// Render renders snapshot using its own preview mode.
func (r *Renderer) Render(ctx context.Context, snapshot layout.Snapshot) (string, error) {
	return r.RenderMode(ctx, snapshot, snapshot.PreviewMode)
}

// RenderMode renders snapshot for mode. Desktop lays items on a two column
// grid where full-width items span both columns; mobile stacks them.
func (r *Renderer) RenderMode(ctx context.Context, snapshot layout.Snapshot, mode layout.PreviewMode) (string, error) {
	if _, ok := layout.ParsePreviewMode(string(mode)); !ok {
		mode = layout.PreviewDesktop
	}
	view := pageView{Mode: mode, Items: make([]itemView, 0, len(snapshot.Items))}
	if mode == layout.PreviewDesktop {
		view.Frame = "max-w-6xl mx-auto"
		view.Layout = "grid grid-cols-2"
	} else {
		view.Frame = "max-w-sm mx-auto"
		view.Layout = "flex flex-col"
	}
	for _, item := range snapshot.Items {
		view.Items = append(view.Items, r.itemView(ctx, item, mode))
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "preview", view); err != nil {
		return "", fmt.Errorf("preview: render: %w", err)
	}
	r.logger.WithContext(ctx).Debug("preview.rendered", "mode", mode, "items", len(view.Items))
	return buf.String(), nil
}

func (r *Renderer) itemView(ctx context.Context, item layout.Item, mode layout.PreviewMode) itemView {
	view := itemView{ID: item.ID, Kind: item.Kind, Fallback: PlaceholderImage}
	switch {
	case mode == layout.PreviewMobile:
		view.Width = "w-full mb-4"
	case item.FullWidth:
		view.Width = "col-span-2 mb-4"
	default:
		view.Width = "col-span-1 mb-4"
	}

	switch payload := item.Payload.(type) {
	case layout.TextPayload:
		view.Kind = layout.KindText
		view.HTML = template.HTML(r.renderMarkdown(ctx, payload.Content))
	case layout.ImagePayload:
		view.Kind = layout.KindImage
		view.Alt = payload.Alt
		src, ok := SafeImageSource(payload.Src)
		if !ok {
			r.logger.WithContext(ctx).Warn("preview.image.src_rejected", "item_id", item.ID)
		}
		view.Src = template.URL(src)
	default:
		view.Kind = layout.KindText
	}
	return view
}

func (r *Renderer) renderMarkdown(ctx context.Context, source string) string {
	if r.markdown == nil {
		return markdown.Render(source)
	}
	return r.markdown.Render(ctx, source)
}

// SafeImageSource returns src when it is an http(s) URL or an embedded image
// data URL, and PlaceholderImage otherwise.
func SafeImageSource(src string) (string, bool) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return PlaceholderImage, false
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "data:image/") {
		return trimmed, true
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return PlaceholderImage, false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return trimmed, true
	default:
		return PlaceholderImage, false
	}
}
