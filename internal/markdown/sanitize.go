package markdown

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips markup that could execute in a viewer (scripts, event
// handler attributes, javascript: URLs) from rendered output.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer builds a sanitizer on the bluemonday UGC policy, additionally
// keeping class attributes so styled subset output survives.
func NewSanitizer() *Sanitizer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	return &Sanitizer{policy: policy}
}

// Sanitize returns the cleaned markup.
func (s *Sanitizer) Sanitize(markup string) string {
	if s == nil || s.policy == nil || markup == "" {
		return markup
	}
	return s.policy.Sanitize(markup)
}
