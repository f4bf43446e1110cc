package layout

import (
	"errors"
	"fmt"
)

const (
	DefaultTextContent = "# Welcome\n\nThis is a **markdown** text component. You can:\n\n- Use *italic* and **bold** text\n- Create lists\n- Add `inline code`\n\n> And even blockquotes!"
	DefaultImageSrc    = "https://images.unsplash.com/photo-1557804506-669a67965ba0?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=400"
	DefaultImageAlt    = "Sample image"
)

var (
	ErrUnknownKind       = errors.New("layout: unknown component kind")
	ErrPayloadFieldType  = errors.New("layout: payload field has the wrong type")
	ErrUnknownSourceKind = errors.New("layout: unknown image source kind")
)

// DefaultPayload returns the payload a freshly dropped component starts with.
func DefaultPayload(kind Kind) Payload {
	switch kind {
	case KindImage:
		return ImagePayload{Src: DefaultImageSrc, Alt: DefaultImageAlt, SourceKind: SourceURL}
	default:
		return TextPayload{Content: DefaultTextContent}
	}
}

// DecodePayload builds the variant for kind from loosely typed form input.
// Missing fields decode to zero values.
func DecodePayload(kind Kind, raw map[string]any) (Payload, error) {
	switch kind {
	case KindText:
		content, err := stringField(raw, "content")
		if err != nil {
			return nil, err
		}
		return TextPayload{Content: content}, nil
	case KindImage:
		src, err := stringField(raw, "src")
		if err != nil {
			return nil, err
		}
		alt, err := stringField(raw, "alt")
		if err != nil {
			return nil, err
		}
		rawSource, err := stringField(raw, "source_kind")
		if err != nil {
			return nil, err
		}
		source, ok := ParseSourceKind(rawSource)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSourceKind, rawSource)
		}
		return ImagePayload{Src: src, Alt: alt, SourceKind: source}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// EncodePayload flattens a payload into form fields; it inverts DecodePayload.
func EncodePayload(payload Payload) map[string]any {
	switch p := payload.(type) {
	case TextPayload:
		return map[string]any{"content": p.Content}
	case ImagePayload:
		return map[string]any{"src": p.Src, "alt": p.Alt, "source_kind": string(p.SourceKind)}
	default:
		return map[string]any{}
	}
}

func stringField(raw map[string]any, key string) (string, error) {
	value, ok := raw[key]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrPayloadFieldType, key, value)
	}
	return s, nil
}
