package layout

import (
	"fmt"
	"maps"

	"github.com/goliatone/go-pagebuilder/internal/validation"
)

// PaletteEntry describes one insertable component kind.
type PaletteEntry struct {
	Kind        Kind           `json:"kind"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	Color       string         `json:"color"`
	Schema      map[string]any `json:"schema"`
}

// Palette is the fixed, ordered set of insertable kinds with their payload schemas.
type Palette struct {
	entries []PaletteEntry
	schemas map[Kind]*validation.Schema
}

// DefaultPalette returns the Text and Image entries.
func DefaultPalette() *Palette {
	palette, err := NewPalette(
		PaletteEntry{
			Kind:        KindText,
			Title:       "Text",
			Description: "Markdown text content",
			Icon:        "type",
			Color:       "blue",
			Schema:      textSchema(),
		},
		PaletteEntry{
			Kind:        KindImage,
			Title:       "Image",
			Description: "Upload or URL image",
			Icon:        "image",
			Color:       "green",
			Schema:      imageSchema(),
		},
	)
	if err != nil {
		panic(fmt.Sprintf("layout: default palette: %v", err))
	}
	return palette
}

// NewPalette compiles each entry schema. Kinds must be unique.
func NewPalette(entries ...PaletteEntry) (*Palette, error) {
	p := &Palette{
		entries: make([]PaletteEntry, 0, len(entries)),
		schemas: make(map[Kind]*validation.Schema, len(entries)),
	}
	for _, entry := range entries {
		if _, exists := p.schemas[entry.Kind]; exists {
			return nil, fmt.Errorf("layout: duplicate palette kind %q", entry.Kind)
		}
		schema, err := validation.Compile(entry.Schema)
		if err != nil {
			return nil, fmt.Errorf("layout: palette kind %q: %w", entry.Kind, err)
		}
		p.schemas[entry.Kind] = schema
		p.entries = append(p.entries, entry)
	}
	return p, nil
}

// Entries returns the entries in palette order.
func (p *Palette) Entries() []PaletteEntry {
	out := make([]PaletteEntry, len(p.entries))
	for i, entry := range p.entries {
		entry.Schema = maps.Clone(entry.Schema)
		out[i] = entry
	}
	return out
}

// Lookup returns the entry for kind.
func (p *Palette) Lookup(kind Kind) (PaletteEntry, bool) {
	for _, entry := range p.entries {
		if entry.Kind == kind {
			entry.Schema = maps.Clone(entry.Schema)
			return entry, true
		}
	}
	return PaletteEntry{}, false
}

// Validate checks raw form input against the schema registered for kind.
func (p *Palette) Validate(kind Kind, raw map[string]any) error {
	schema, ok := p.schemas[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return schema.Validate(raw)
}

// Decode validates raw against the kind schema and builds the payload.
func (p *Palette) Decode(kind Kind, raw map[string]any) (Payload, error) {
	if err := p.Validate(kind, raw); err != nil {
		return nil, err
	}
	return DecodePayload(kind, raw)
}

func textSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{"type": "string"},
		},
		"required":             []any{"content"},
		"additionalProperties": false,
	}
}

func imageSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"src":         map[string]any{"type": "string", "minLength": 1},
			"alt":         map[string]any{"type": "string"},
			"source_kind": map[string]any{"type": "string", "enum": []any{string(SourceURL), string(SourceUpload)}},
		},
		"required":             []any{"src"},
		"additionalProperties": false,
	}
}
