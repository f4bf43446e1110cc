package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/markdown"
)

type markdownRenderPayload struct {
	Source      string `json:"source"`
	FrontMatter bool   `json:"front_matter"`
}

type markdownRenderResponse struct {
	HTML        string                `json:"html"`
	Engine      string                `json:"engine"`
	FrontMatter *markdown.FrontMatter `json:"front_matter,omitempty"`
}

func (api *BuilderAPI) registerPreviewRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "sessions")+"/{session}/preview", api.handlePreview)
}

func (api *BuilderAPI) registerMarkdownRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("POST "+joinPath(base, "markdown/render"), api.handleMarkdownRender)
}

func (api *BuilderAPI) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, err := api.sessions.Get(r.Context(), r.PathValue("session"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	snapshot := sess.Editor.Snapshot()
	mode := snapshot.PreviewMode
	if raw := strings.TrimSpace(r.URL.Query().Get("mode")); raw != "" {
		parsed, ok := layout.ParsePreviewMode(raw)
		if !ok {
			badRequest(w, "mode must be desktop or mobile")
			return
		}
		mode = parsed
	}

	html, err := api.preview.RenderMode(r.Context(), snapshot, mode)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (api *BuilderAPI) handleMarkdownRender(w http.ResponseWriter, r *http.Request) {
	var payload markdownRenderPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, err.Error())
		return
	}
	source := payload.Source
	var meta *markdown.FrontMatter
	if payload.FrontMatter {
		parsed, body, err := markdown.SplitFrontMatter([]byte(source))
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		source = string(body)
		if !parsed.IsZero() {
			meta = &parsed
		}
	}
	writeJSON(w, http.StatusOK, markdownRenderResponse{
		HTML:        api.markdown.Render(r.Context(), source),
		Engine:      api.markdown.Engine(),
		FrontMatter: meta,
	})
}
