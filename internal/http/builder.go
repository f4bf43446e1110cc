package http

import (
	"fmt"
	"net/http"
	"strings"

	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/preview"
	"github.com/goliatone/go-pagebuilder/internal/session"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// DefaultBasePath is where the builder API mounts unless overridden.
const DefaultBasePath = "/builder/api"

// BuilderAPI registers the page builder endpoints.
type BuilderAPI struct {
	basePath string
	sessions session.Store
	palette  *layout.Palette
	commands *layoutcmd.HandlerSet
	preview  *preview.Renderer
	markdown interfaces.MarkdownService
	logger   interfaces.Logger
}

// BuilderOption mutates the BuilderAPI configuration.
type BuilderOption func(*BuilderAPI)

// NewBuilderAPI constructs a BuilderAPI instance.
func NewBuilderAPI(opts ...BuilderOption) *BuilderAPI {
	api := &BuilderAPI{
		basePath: DefaultBasePath,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/builder/api").
func WithBasePath(path string) BuilderOption {
	return func(api *BuilderAPI) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithSessionStore wires the editing session store.
func WithSessionStore(store session.Store) BuilderOption {
	return func(api *BuilderAPI) {
		api.sessions = store
	}
}

// WithPalette wires the component palette.
func WithPalette(palette *layout.Palette) BuilderOption {
	return func(api *BuilderAPI) {
		api.palette = palette
	}
}

// WithCommands wires the layout command handlers.
func WithCommands(set *layoutcmd.HandlerSet) BuilderOption {
	return func(api *BuilderAPI) {
		api.commands = set
	}
}

// WithPreviewRenderer enables the preview endpoint.
func WithPreviewRenderer(renderer *preview.Renderer) BuilderOption {
	return func(api *BuilderAPI) {
		api.preview = renderer
	}
}

// WithMarkdownService enables the markdown render endpoint.
func WithMarkdownService(service interfaces.MarkdownService) BuilderOption {
	return func(api *BuilderAPI) {
		api.markdown = service
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger interfaces.Logger) BuilderOption {
	return func(api *BuilderAPI) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the builder endpoints to the provided mux. Preview and
// markdown routes are only mounted when their services are wired.
func (api *BuilderAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: builder api is nil")
	}
	if api.sessions == nil || api.commands == nil {
		return fmt.Errorf("http: session store and layout commands are required")
	}

	base := joinPath(api.basePath, "")

	api.registerPaletteRoutes(mux, base)
	api.registerSessionRoutes(mux, base)
	api.registerLayoutRoutes(mux, base)
	if api.preview != nil {
		api.registerPreviewRoutes(mux, base)
	}
	if api.markdown != nil {
		api.registerMarkdownRoutes(mux, base)
	}

	api.logger.Debug("http.routes.registered", "base_path", base)
	return nil
}

func (api *BuilderAPI) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		api.logger.WithContext(r.Context()).Error("http.request.failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		api.logger.WithContext(r.Context()).Debug("http.request.rejected", "method", r.Method, "path", r.URL.Path, "status", status)
	}
	writeJSON(w, status, payload)
}
