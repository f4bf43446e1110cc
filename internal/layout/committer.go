package layout

import (
	"slices"
	"sync"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// DefaultCommitWindow is the quiescence delay before staged form edits apply.
const DefaultCommitWindow = 500 * time.Millisecond

// CommitHook observes every staged edit once it is resolved. applied is false
// when the item vanished or the payload was unchanged.
type CommitHook func(id string, applied bool)

// CommitterOption configures a FormCommitter.
type CommitterOption func(*FormCommitter)

// WithCommitWindow sets the debounce window. A window <= 0 applies edits immediately.
func WithCommitWindow(window time.Duration) CommitterOption {
	return func(c *FormCommitter) {
		c.window = window
	}
}

// WithCommitHook registers a hook invoked after each resolved edit.
func WithCommitHook(hook CommitHook) CommitterOption {
	return func(c *FormCommitter) {
		c.hook = hook
	}
}

// WithCommitterLogger sets the committer logger.
func WithCommitterLogger(logger interfaces.Logger) CommitterOption {
	return func(c *FormCommitter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// FormCommitter batches property-form edits and applies them through
// Editor.UpdateData once no further edit arrives within the window.
type FormCommitter struct {
	editor *Editor
	window time.Duration
	hook   CommitHook
	logger interfaces.Logger

	// applyMu serialises drain-and-apply so an older batch never lands
	// after a newer one.
	applyMu sync.Mutex

	mu         sync.Mutex
	pending    map[string]Payload
	order      []string
	timer      *time.Timer
	generation uint64
}

// NewFormCommitter returns a committer bound to editor.
func NewFormCommitter(editor *Editor, opts ...CommitterOption) *FormCommitter {
	c := &FormCommitter{
		editor:  editor,
		window:  DefaultCommitWindow,
		logger:  logging.NoOp(),
		pending: map[string]Payload{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Window returns the configured debounce window.
func (c *FormCommitter) Window() time.Duration {
	return c.window
}

// Stage records payload as the latest edit for id and restarts the window.
func (c *FormCommitter) Stage(id string, payload Payload) {
	if id == "" || payload == nil {
		return
	}
	if c.window <= 0 {
		c.applyMu.Lock()
		defer c.applyMu.Unlock()
		c.commit(id, payload)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.pending[id]; !exists {
		c.order = append(c.order, id)
	}
	c.pending[id] = payload
	c.generation++
	gen := c.generation
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, func() { c.expire(gen) })
}

// Pending returns the number of staged edits not yet applied.
func (c *FormCommitter) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Flush applies staged edits now and returns how many changed the layout.
func (c *FormCommitter) Flush() int {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()
	ids, payloads := c.drain()
	return c.apply(ids, payloads)
}

// Discard drops the staged edit for id, if any. It waits for a batch that is
// already being applied, so an edit written after Discard returns is not
// overwritten by an older staged payload.
func (c *FormCommitter) Discard(id string) bool {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.pending[id]; !ok {
		return false
	}
	delete(c.pending, id)
	c.order = slices.DeleteFunc(c.order, func(pending string) bool { return pending == id })
	if len(c.order) == 0 && c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.logger.Debug("layout.commit.discarded", "item_id", id)
	return true
}

// Stop discards staged edits without applying them.
func (c *FormCommitter) Stop() {
	ids, _ := c.drain()
	if len(ids) > 0 {
		c.logger.Debug("layout.commit.discarded", "count", len(ids))
	}
}

func (c *FormCommitter) expire(gen uint64) {
	c.applyMu.Lock()
	defer c.applyMu.Unlock()

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	ids, payloads := c.drainLocked()
	c.mu.Unlock()
	c.apply(ids, payloads)
}

func (c *FormCommitter) drain() ([]string, map[string]Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drainLocked()
}

func (c *FormCommitter) drainLocked() ([]string, map[string]Payload) {
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	ids, payloads := c.order, c.pending
	c.order = nil
	c.pending = map[string]Payload{}
	return ids, payloads
}

func (c *FormCommitter) apply(ids []string, payloads map[string]Payload) int {
	applied := 0
	for _, id := range ids {
		if c.commit(id, payloads[id]) {
			applied++
		}
	}
	return applied
}

func (c *FormCommitter) commit(id string, payload Payload) bool {
	applied := false
	if current, ok := c.editor.Item(id); ok && current.Payload != payload {
		applied = c.editor.UpdateData(id, payload)
	}
	c.logger.Trace("layout.commit.resolved", "item_id", id, "applied", applied)
	if c.hook != nil {
		c.hook(id, applied)
	}
	return applied
}
