package markdown

import "strings"

const (
	ClassesPlain   = "plain"
	ClassesUtility = "utility"
)

// ClassSet holds the class attribute emitted for each element. Empty values
// produce bare tags.
type ClassSet struct {
	H1         string
	H2         string
	H3         string
	Strong     string
	Em         string
	Code       string
	List       string
	ListItem   string
	Blockquote string
	Paragraph  string
}

// PlainClasses emits bare tags.
func PlainClasses() ClassSet {
	return ClassSet{}
}

// UtilityClasses matches the utility-class styling used by the editor canvas.
func UtilityClasses() ClassSet {
	return ClassSet{
		H1:         "text-2xl font-semibold mb-4",
		H2:         "text-xl font-semibold mb-3",
		H3:         "text-lg font-semibold mb-2",
		Strong:     "font-semibold",
		Em:         "italic",
		Code:       "bg-neutral-100 px-1 py-0.5 rounded text-sm font-mono",
		List:       "list-disc list-inside mb-4",
		ListItem:   "mb-1",
		Blockquote: "border-l-4 border-neutral-300 pl-4 my-4 text-neutral-600 italic",
		Paragraph:  "mb-4",
	}
}

// ClassPreset resolves a preset name. The empty name is plain.
func ClassPreset(name string) (ClassSet, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ClassesPlain:
		return PlainClasses(), true
	case ClassesUtility:
		return UtilityClasses(), true
	default:
		return ClassSet{}, false
	}
}
