package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block at the top of a markdown file.
type FrontMatter struct {
	Title   string   `yaml:"title" toml:"title" json:"title,omitempty"`
	Summary string   `yaml:"summary" toml:"summary" json:"summary,omitempty"`
	Tags    []string `yaml:"tags" toml:"tags" json:"tags,omitempty"`
	Draft   bool     `yaml:"draft" toml:"draft" json:"draft,omitempty"`
}

// IsZero reports whether no metadata was found.
func (f FrontMatter) IsZero() bool {
	return f.Title == "" && f.Summary == "" && len(f.Tags) == 0 && !f.Draft
}

// SplitFrontMatter separates a leading front matter block (YAML between "---"
// or TOML between "+++" lines) from the markdown body. Sources without front
// matter come back unchanged.
func SplitFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, body, nil
}
