package layout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the closed set of component kinds a layout can hold.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Kinds lists every kind in palette order.
func Kinds() []Kind {
	return []Kind{KindText, KindImage}
}

// ParseKind resolves a kind name, case-insensitively.
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindText:
		return KindText, true
	case KindImage:
		return KindImage, true
	default:
		return "", false
	}
}

// SourceKind records how an image source was provided.
type SourceKind string

const (
	SourceURL    SourceKind = "url"
	SourceUpload SourceKind = "upload"
)

// ParseSourceKind resolves a source kind. Empty input means SourceURL.
func ParseSourceKind(value string) (SourceKind, bool) {
	switch SourceKind(strings.ToLower(strings.TrimSpace(value))) {
	case "", SourceURL:
		return SourceURL, true
	case SourceUpload:
		return SourceUpload, true
	default:
		return "", false
	}
}

// PreviewMode is the viewport simulated by the preview. It never affects
// stored layout data.
type PreviewMode string

const (
	PreviewDesktop PreviewMode = "desktop"
	PreviewMobile  PreviewMode = "mobile"
)

// ParsePreviewMode resolves a preview mode name.
func ParsePreviewMode(value string) (PreviewMode, bool) {
	switch PreviewMode(strings.ToLower(strings.TrimSpace(value))) {
	case PreviewDesktop:
		return PreviewDesktop, true
	case PreviewMobile:
		return PreviewMobile, true
	default:
		return "", false
	}
}

// Payload is the content of a layout item. The variant always matches the
// owning item's Kind.
type Payload interface {
	Kind() Kind
	isPayload()
}

// TextPayload holds markdown subset source.
type TextPayload struct {
	Content string `json:"content"`
}

func (TextPayload) Kind() Kind { return KindText }
func (TextPayload) isPayload() {}

// ImagePayload holds an image reference, either a URL or an embedded data URL.
type ImagePayload struct {
	Src        string     `json:"src"`
	Alt        string     `json:"alt"`
	SourceKind SourceKind `json:"source_kind"`
}

func (ImagePayload) Kind() Kind { return KindImage }
func (ImagePayload) isPayload() {}

// Embedded reports whether Src carries the image bytes as a data URL.
func (p ImagePayload) Embedded() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(p.Src)), "data:")
}

// Item is one placed component.
type Item struct {
	ID        string  `json:"id"`
	Kind      Kind    `json:"kind"`
	FullWidth bool    `json:"full_width"`
	Payload   Payload `json:"payload"`
}

// UnmarshalJSON decodes the payload variant selected by kind.
func (i *Item) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string         `json:"id"`
		Kind      string         `json:"kind"`
		FullWidth bool           `json:"full_width"`
		Payload   map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	kind, ok := ParseKind(aux.Kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, aux.Kind)
	}
	payload, err := DecodePayload(kind, aux.Payload)
	if err != nil {
		return err
	}
	*i = Item{ID: aux.ID, Kind: kind, FullWidth: aux.FullWidth, Payload: payload}
	return nil
}

// Snapshot is a read-only copy of editor state handed to renderers.
type Snapshot struct {
	Items       []Item      `json:"items"`
	SelectedID  string      `json:"selected_id,omitempty"`
	PreviewMode PreviewMode `json:"preview_mode"`
}

// Len returns the number of items.
func (s Snapshot) Len() int {
	return len(s.Items)
}

// IDs returns item ids in layout order.
func (s Snapshot) IDs() []string {
	ids := make([]string, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.ID
	}
	return ids
}
