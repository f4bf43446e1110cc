package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

var (
	ErrNameRequired = errors.New("session: name is required")
	ErrNameInvalid  = errors.New("session: name does not produce a valid slug")
)

// NotFoundError is returned when a session cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Session is one ephemeral editing session.
type Session struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	Editor    *layout.Editor
	Committer *layout.FormCommitter
}

// Info summarises a session for listings.
type Info struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Items     int       `json:"items"`
	Pending   int       `json:"pending_edits"`
}

// Info returns the listing summary for s.
func (s *Session) Info() Info {
	return Info{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		Items:     s.Editor.Len(),
		Pending:   s.Committer.Pending(),
	}
}

// Store keeps editing sessions in memory.
type Store interface {
	// Open returns the named session, creating it on first use. created
	// reports whether a new session was made.
	Open(ctx context.Context, name string) (sess *Session, created bool, err error)
	Get(ctx context.Context, name string) (*Session, error)
	List(ctx context.Context) []Info
	// Close flushes pending form edits and drops the session.
	Close(ctx context.Context, name string) error
}

// StoreOption configures the store.
type StoreOption func(*store)

// WithLogger sets the store logger; editors inherit it.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCommitWindow sets the form debounce window for new sessions.
func WithCommitWindow(window time.Duration) StoreOption {
	return func(s *store) {
		s.window = window
	}
}

// WithDeterministicIDs makes session and item ids reproducible.
func WithDeterministicIDs(enabled bool) StoreOption {
	return func(s *store) {
		s.deterministic = enabled
	}
}

// WithDefaultPreviewMode sets the preview mode new sessions start in.
func WithDefaultPreviewMode(mode layout.PreviewMode) StoreOption {
	return func(s *store) {
		if parsed, ok := layout.ParsePreviewMode(string(mode)); ok {
			s.previewMode = parsed
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *store) {
		if now != nil {
			s.now = now
		}
	}
}

type store struct {
	mu            sync.RWMutex
	sessions      map[string]*Session
	logger        interfaces.Logger
	window        time.Duration
	deterministic bool
	previewMode   layout.PreviewMode
	now           func() time.Time
}

// NewStore constructs an in-memory session store.
func NewStore(opts ...StoreOption) Store {
	s := &store{
		sessions: make(map[string]*Session),
		logger:   logging.NoOp(),
		window:   layout.DefaultCommitWindow,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *store) Open(ctx context.Context, name string) (*Session, bool, error) {
	key, err := NormalizeName(name)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[key]; ok {
		return existing, false, nil
	}
	sess := s.newSession(key)
	s.sessions[key] = sess

	s.logger.WithContext(ctx).Info("session.opened", "session", key, "session_id", sess.ID.String())
	return sess, true, nil
}

func (s *store) Get(_ context.Context, name string) (*Session, error) {
	key, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, &NotFoundError{Resource: "session", Key: key}
	}
	return sess, nil
}

func (s *store) List(_ context.Context) []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Info, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Info())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *store) Close(ctx context.Context, name string) error {
	key, err := NormalizeName(name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if ok {
		delete(s.sessions, key)
	}
	s.mu.Unlock()

	if !ok {
		return &NotFoundError{Resource: "session", Key: key}
	}
	flushed := sess.Committer.Flush()
	s.logger.WithContext(ctx).Info("session.closed", "session", key, "flushed_edits", flushed)
	return nil
}

func (s *store) newSession(key string) *Session {
	logger := logging.WithFields(s.logger, map[string]any{"session": key})

	editorOpts := []layout.EditorOption{
		layout.WithLogger(logger),
		layout.WithSessionName(key),
	}
	id := uuid.New()
	if s.deterministic {
		id = identity.SessionUUID(key)
		editorOpts = append(editorOpts, layout.WithIDGenerator(identity.ItemSequence(key)))
	}
	editor := layout.NewEditor(editorOpts...)
	if s.previewMode != "" {
		editor.SetPreviewMode(s.previewMode)
	}

	return &Session{
		ID:        id,
		Name:      key,
		CreatedAt: s.now(),
		Editor:    editor,
		Committer: layout.NewFormCommitter(editor,
			layout.WithCommitWindow(s.window),
			layout.WithCommitterLogger(logger),
		),
	}
}

// NormalizeName slugifies a session name.
func NormalizeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrNameRequired
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("%w: %q", ErrNameInvalid, name)
	}
	return normalized, nil
}
