package layout

import (
	"slices"
	"sync"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
	"github.com/google/uuid"
)

// IDGenerator returns a fresh item id.
type IDGenerator func() string

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithIDGenerator overrides the default uuid generator.
func WithIDGenerator(gen IDGenerator) EditorOption {
	return func(e *Editor) {
		if gen != nil {
			e.newID = gen
		}
	}
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(logger interfaces.Logger) EditorOption {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSessionName tags log entries with the owning session.
func WithSessionName(name string) EditorOption {
	return func(e *Editor) {
		e.session = name
	}
}

// Editor owns the ordered item sequence, the selection and the preview mode.
// Every operation is total: invalid ids or indices are no-ops.
type Editor struct {
	mu       sync.Mutex
	items    []Item
	selected string
	mode     PreviewMode
	newID    IDGenerator
	logger   interfaces.Logger
	session  string
}

// NewEditor returns an empty editor in desktop preview mode.
func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{
		mode:   PreviewDesktop,
		newID:  uuid.NewString,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// InsertFromPalette creates a full-width item with the default payload for
// kind and inserts it at atIndex, clamped to [0, Len()].
func (e *Editor) InsertFromPalette(kind Kind, atIndex int) Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insertLocked(kind, atIndex)
}

// Reorder moves the item at from to position to.
func (e *Editor) Reorder(from, to int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reorderLocked(from, to)
}

func (e *Editor) insertLocked(kind Kind, atIndex int) Item {
	if _, ok := ParseKind(string(kind)); !ok {
		kind = KindText
	}

	item := Item{
		ID:        e.uniqueIDLocked(),
		Kind:      kind,
		FullWidth: true,
		Payload:   DefaultPayload(kind),
	}
	index := min(max(atIndex, 0), len(e.items))
	e.items = slices.Insert(e.items, index, item)

	e.log(item.ID, "insert").Debug("layout.item.inserted", "kind", kind, "index", index)
	return item
}

func (e *Editor) reorderLocked(from, to int) bool {
	if from == to || from < 0 || to < 0 || from >= len(e.items) || to >= len(e.items) {
		return false
	}
	item := e.items[from]
	e.items = slices.Delete(e.items, from, from+1)
	e.items = slices.Insert(e.items, to, item)

	e.log(item.ID, "reorder").Debug("layout.item.moved", "from", from, "to", to)
	return true
}

// ToggleFullWidth flips the full-width flag of the item with id.
func (e *Editor) ToggleFullWidth(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(id)
	if idx < 0 {
		return false
	}
	e.items[idx].FullWidth = !e.items[idx].FullWidth

	e.log(id, "toggle_width").Debug("layout.item.width_toggled", "full_width", e.items[idx].FullWidth)
	return true
}

// UpdateData replaces the payload of the item with id. The payload variant
// must match the item kind.
func (e *Editor) UpdateData(id string, payload Payload) bool {
	if payload == nil {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(id)
	if idx < 0 {
		return false
	}
	if e.items[idx].Kind != payload.Kind() {
		e.log(id, "update").Warn("layout.item.payload_kind_mismatch", "kind", e.items[idx].Kind, "payload_kind", payload.Kind())
		return false
	}
	e.items[idx].Payload = payload

	e.log(id, "update").Debug("layout.item.updated")
	return true
}

// Remove deletes the item with id and clears the selection if it pointed at it.
func (e *Editor) Remove(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(id)
	if idx < 0 {
		return false
	}
	e.items = slices.Delete(e.items, idx, idx+1)
	if e.selected == id {
		e.selected = ""
	}

	e.log(id, "remove").Debug("layout.item.removed", "index", idx)
	return true
}

// Clear empties the layout and the selection. It reports false when the
// layout was already empty. Callers gate this behind a confirmation.
func (e *Editor) Clear() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.items) == 0 {
		return false
	}
	removed := len(e.items)
	e.items = nil
	e.selected = ""

	e.log("", "clear").Info("layout.cleared", "removed", removed)
	return true
}

// Select marks the item with id as selected.
func (e *Editor) Select(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectLocked(id)
}

func (e *Editor) selectLocked(id string) bool {
	if e.indexLocked(id) < 0 {
		return false
	}
	e.selected = id
	return true
}

// Deselect clears the selection.
func (e *Editor) Deselect() {
	e.mu.Lock()
	e.selected = ""
	e.mu.Unlock()
}

// Selected returns the selected item, if any.
func (e *Editor) Selected() (Item, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(e.selected)
	if idx < 0 {
		return Item{}, false
	}
	return e.items[idx], true
}

// SetPreviewMode switches the preview viewport. Layout data is untouched.
func (e *Editor) SetPreviewMode(mode PreviewMode) bool {
	if _, ok := ParsePreviewMode(string(mode)); !ok {
		return false
	}
	e.mu.Lock()
	e.mode = mode
	e.mu.Unlock()
	return true
}

// PreviewMode returns the current preview viewport.
func (e *Editor) PreviewMode() PreviewMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Item returns the item with id.
func (e *Editor) Item(id string) (Item, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexLocked(id)
	if idx < 0 {
		return Item{}, false
	}
	return e.items[idx], true
}

// Len returns the number of items.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// Snapshot returns a copy of the current state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]Item, len(e.items))
	copy(items, e.items)
	return Snapshot{Items: items, SelectedID: e.selected, PreviewMode: e.mode}
}

func (e *Editor) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(e.items, func(item Item) bool { return item.ID == id })
}

func (e *Editor) uniqueIDLocked() string {
	for range 3 {
		id := e.newID()
		if id != "" && e.indexLocked(id) < 0 {
			return id
		}
	}
	// The configured generator keeps colliding; deterministic ids are lost
	// for this item.
	id := uuid.NewString()
	e.log(id, "insert").Warn("layout.item.id_generator_collision", "attempts", 3)
	for e.indexLocked(id) >= 0 {
		id = uuid.NewString()
	}
	return id
}

func (e *Editor) log(itemID, operation string) interfaces.Logger {
	return logging.WithLayoutContext(e.logger, e.session, itemID, operation)
}
