package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const (
	EngineSubset   = "subset"
	EngineGoldmark = "goldmark"
)

var (
	ErrUnknownEngine      = errors.New("markdown: unknown engine")
	ErrUnknownClassPreset = errors.New("markdown: unknown class preset")
)

// ServiceOption customises the markdown service.
type ServiceOption func(*service)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logging.Ensure(logger)
	}
}

// WithGoldmarkExtensions selects goldmark extensions by name.
func WithGoldmarkExtensions(names ...string) ServiceOption {
	return func(s *service) {
		s.extensions = append([]string(nil), names...)
	}
}

type service struct {
	engine     string
	renderer   interfaces.MarkdownRenderer
	sanitizer  *Sanitizer
	logger     interfaces.Logger
	extensions []string
}

// NewService builds the renderer selected by opts.
func NewService(opts interfaces.RenderOptions, svcOpts ...ServiceOption) (interfaces.MarkdownService, error) {
	s := &service{logger: logging.NoOp()}
	for _, opt := range svcOpts {
		if opt != nil {
			opt(s)
		}
	}

	engine := strings.ToLower(strings.TrimSpace(opts.Engine))
	switch engine {
	case "", EngineSubset:
		classes, ok := ClassPreset(opts.Classes)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownClassPreset, opts.Classes)
		}
		s.engine = EngineSubset
		s.renderer = NewSubsetRenderer(WithClasses(classes))
	case EngineGoldmark:
		s.engine = EngineGoldmark
		s.renderer = NewGoldmarkRenderer(GoldmarkOptions{
			Extensions: s.extensions,
			HardWraps:  opts.HardWraps,
			SafeMode:   opts.Sanitize,
		}, s.logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, opts.Engine)
	}

	if opts.Sanitize {
		s.sanitizer = NewSanitizer()
	}
	return s, nil
}

func (s *service) Engine() string {
	return s.engine
}

// Render never fails; empty source yields "".
func (s *service) Render(ctx context.Context, source string) string {
	if source == "" {
		return ""
	}
	out := s.renderer.Render(source)
	if s.sanitizer != nil {
		out = s.sanitizer.Sanitize(out)
	}

	logger := s.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	logger.Trace("markdown.rendered",
		"engine", s.engine,
		"source_bytes", len(source),
		"markup_bytes", len(out),
		"sanitized", s.sanitizer != nil,
	)
	return out
}
