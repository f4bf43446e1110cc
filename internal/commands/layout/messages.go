package layoutcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-pagebuilder/internal/layout"
)

const (
	insertMessageType      = "builder.layout.insert"
	reorderMessageType     = "builder.layout.reorder"
	toggleWidthMessageType = "builder.layout.toggle_width"
	updateMessageType      = "builder.layout.update"
	removeMessageType      = "builder.layout.remove"
	clearMessageType       = "builder.layout.clear"
	dropMessageType        = "builder.layout.drop"
	selectMessageType      = "builder.layout.select"
	previewModeMessageType = "builder.layout.preview_mode"
)

// Result is filled in by handlers when the caller supplies one.
type Result struct {
	Applied  bool              `json:"applied"`
	Staged   bool              `json:"staged,omitempty"`
	Action   layout.DropAction `json:"action,omitempty"`
	Item     *layout.Item      `json:"item,omitempty"`
	Snapshot layout.Snapshot   `json:"snapshot"`
}

// InsertComponentCommand places a new palette component at Index.
type InsertComponentCommand struct {
	Session string `json:"session"`
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	// Select marks the new item as selected, as a palette drop does.
	Select bool    `json:"select,omitempty"`
	Result *Result `json:"-"`
}

// Type implements command.Message.
func (InsertComponentCommand) Type() string { return insertMessageType }

// Validate ensures the session and kind are known before handlers execute.
func (cmd InsertComponentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.insert.session_required", "session is required"))),
		validation.Field(&cmd.Kind, validation.By(knownKind)),
	)
}

// ReorderComponentCommand moves the item at From to To.
type ReorderComponentCommand struct {
	Session string  `json:"session"`
	From    int     `json:"from"`
	To      int     `json:"to"`
	Result  *Result `json:"-"`
}

// Type implements command.Message.
func (ReorderComponentCommand) Type() string { return reorderMessageType }

// Validate rejects negative indices.
func (cmd ReorderComponentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.reorder.session_required", "session is required"))),
		validation.Field(&cmd.From, validation.Min(0)),
		validation.Field(&cmd.To, validation.Min(0)),
	)
}

// ToggleWidthCommand flips the full-width flag of an item.
type ToggleWidthCommand struct {
	Session string  `json:"session"`
	ItemID  string  `json:"item_id"`
	Result  *Result `json:"-"`
}

// Type implements command.Message.
func (ToggleWidthCommand) Type() string { return toggleWidthMessageType }

func (cmd ToggleWidthCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.toggle_width.session_required", "session is required"))),
		validation.Field(&cmd.ItemID, validation.By(requiredText("builder.layout.toggle_width.item_required", "item id is required"))),
	)
}

// UpdateComponentCommand replaces an item payload with form input. The
// payload is checked against the palette schema for the item kind.
type UpdateComponentCommand struct {
	Session string         `json:"session"`
	ItemID  string         `json:"item_id"`
	Payload map[string]any `json:"payload"`
	// Debounce stages the edit through the session form committer.
	Debounce bool    `json:"debounce,omitempty"`
	Result   *Result `json:"-"`
}

// Type implements command.Message.
func (UpdateComponentCommand) Type() string { return updateMessageType }

func (cmd UpdateComponentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.update.session_required", "session is required"))),
		validation.Field(&cmd.ItemID, validation.By(requiredText("builder.layout.update.item_required", "item id is required"))),
		validation.Field(&cmd.Payload, validation.NotNil),
	)
}

// RemoveComponentCommand deletes an item.
type RemoveComponentCommand struct {
	Session string  `json:"session"`
	ItemID  string  `json:"item_id"`
	Result  *Result `json:"-"`
}

// Type implements command.Message.
func (RemoveComponentCommand) Type() string { return removeMessageType }

func (cmd RemoveComponentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.remove.session_required", "session is required"))),
		validation.Field(&cmd.ItemID, validation.By(requiredText("builder.layout.remove.item_required", "item id is required"))),
	)
}

// ClearLayoutCommand empties a layout. It is destructive, so callers must
// set Confirmed.
type ClearLayoutCommand struct {
	Session   string  `json:"session"`
	Confirmed bool    `json:"confirmed"`
	Result    *Result `json:"-"`
}

// Type implements command.Message.
func (ClearLayoutCommand) Type() string { return clearMessageType }

func (cmd ClearLayoutCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.clear.session_required", "session is required"))),
		validation.Field(&cmd.Confirmed, validation.By(func(value any) error {
			if confirmed, _ := value.(bool); !confirmed {
				return validation.NewError("builder.layout.clear.confirmation_required", "clearing the layout must be confirmed")
			}
			return nil
		})),
	)
}

// ApplyDropCommand forwards a completed drag gesture.
type ApplyDropCommand struct {
	Session string            `json:"session"`
	Drop    layout.DropResult `json:"drop"`
	Result  *Result           `json:"-"`
}

// Type implements command.Message.
func (ApplyDropCommand) Type() string { return dropMessageType }

func (cmd ApplyDropCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.drop.session_required", "session is required"))),
		validation.Field(&cmd.Drop, validation.By(func(value any) error {
			drop, _ := value.(layout.DropResult)
			if strings.TrimSpace(drop.DraggableID) == "" {
				return validation.NewError("builder.layout.drop.draggable_required", "draggable id is required")
			}
			if strings.TrimSpace(drop.Source.ContainerID) == "" {
				return validation.NewError("builder.layout.drop.source_required", "source container is required")
			}
			return nil
		})),
	)
}

// SelectComponentCommand selects an item; an empty ItemID clears the selection.
type SelectComponentCommand struct {
	Session string  `json:"session"`
	ItemID  string  `json:"item_id"`
	Result  *Result `json:"-"`
}

// Type implements command.Message.
func (SelectComponentCommand) Type() string { return selectMessageType }

func (cmd SelectComponentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.select.session_required", "session is required"))),
	)
}

// SetPreviewModeCommand switches the preview viewport.
type SetPreviewModeCommand struct {
	Session string  `json:"session"`
	Mode    string  `json:"mode"`
	Result  *Result `json:"-"`
}

// Type implements command.Message.
func (SetPreviewModeCommand) Type() string { return previewModeMessageType }

func (cmd SetPreviewModeCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Session, validation.By(requiredText("builder.layout.preview_mode.session_required", "session is required"))),
		validation.Field(&cmd.Mode, validation.By(func(value any) error {
			mode, _ := value.(string)
			if _, ok := layout.ParsePreviewMode(mode); !ok {
				return validation.NewError("builder.layout.preview_mode.invalid", "mode must be desktop or mobile")
			}
			return nil
		})),
	)
}

func requiredText(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}

func knownKind(value any) error {
	kind, _ := value.(string)
	if _, ok := layout.ParseKind(kind); !ok {
		return validation.NewError("builder.layout.insert.kind_invalid", "kind must be text or image")
	}
	return nil
}
