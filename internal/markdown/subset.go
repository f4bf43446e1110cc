package markdown

import "strings"

// SubsetRenderer renders the markdown subset. It holds no mutable state and
// is safe for concurrent use.
type SubsetRenderer struct {
	classes ClassSet
}

// SubsetOption customises a SubsetRenderer.
type SubsetOption func(*SubsetRenderer)

// WithClasses sets the class attributes emitted per element.
func WithClasses(classes ClassSet) SubsetOption {
	return func(r *SubsetRenderer) {
		r.classes = classes
	}
}

// NewSubsetRenderer returns a renderer emitting bare tags unless configured.
func NewSubsetRenderer(opts ...SubsetOption) *SubsetRenderer {
	r := &SubsetRenderer{classes: PlainClasses()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var plainRenderer = NewSubsetRenderer()

// Render converts source with bare tags. Empty input yields "".
func Render(source string) string {
	return plainRenderer.Render(source)
}

// Render converts source into markup. Blocks are separated by a newline.
func (r *SubsetRenderer) Render(source string) string {
	if source == "" {
		return ""
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")

	w := &blockWriter{renderer: r}
	for _, line := range strings.Split(source, "\n") {
		w.line(line)
	}
	w.flush()
	return strings.Join(w.blocks, "\n")
}

type blockWriter struct {
	renderer  *SubsetRenderer
	blocks    []string
	paragraph []string
	items     []string
}

func (w *blockWriter) line(line string) {
	c := w.renderer.classes
	switch {
	case strings.TrimSpace(line) == "":
		w.flush()
	case strings.HasPrefix(line, "### "):
		w.flush()
		w.emit(element("h3", c.H3, w.renderer.inline(line[4:])))
	case strings.HasPrefix(line, "## "):
		w.flush()
		w.emit(element("h2", c.H2, w.renderer.inline(line[3:])))
	case strings.HasPrefix(line, "# "):
		w.flush()
		w.emit(element("h1", c.H1, w.renderer.inline(line[2:])))
	case strings.HasPrefix(line, "- "):
		w.flushParagraph()
		w.items = append(w.items, element("li", c.ListItem, w.renderer.inline(line[2:])))
	case strings.HasPrefix(line, "> "):
		w.flush()
		w.emit(element("blockquote", c.Blockquote, w.renderer.inline(line[2:])))
	default:
		w.flushList()
		w.paragraph = append(w.paragraph, w.renderer.inline(line))
	}
}

func (w *blockWriter) emit(block string) {
	w.blocks = append(w.blocks, block)
}

func (w *blockWriter) flush() {
	w.flushParagraph()
	w.flushList()
}

func (w *blockWriter) flushParagraph() {
	if len(w.paragraph) == 0 {
		return
	}
	w.emit(element("p", w.renderer.classes.Paragraph, strings.Join(w.paragraph, "<br>")))
	w.paragraph = w.paragraph[:0]
}

func (w *blockWriter) flushList() {
	if len(w.items) == 0 {
		return
	}
	w.emit(element("ul", w.renderer.classes.List, strings.Join(w.items, "")))
	w.items = w.items[:0]
}

// inline scans text once, left to right. At each marker "**" is tried before
// "*", so a bold delimiter is never read as two italic ones. Emphasis content
// is rendered recursively; code content is literal. A marker without a
// closing delimiter is written as-is.
func (r *SubsetRenderer) inline(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		switch {
		case strings.HasPrefix(text[i:], "**"):
			end := strings.Index(text[i+2:], "**")
			if end < 0 {
				b.WriteString("**")
				i += 2
				continue
			}
			b.WriteString(element("strong", r.classes.Strong, r.inline(text[i+2:i+2+end])))
			i += end + 4
		case text[i] == '*':
			end := closingStar(text, i+1)
			if end < 0 {
				b.WriteByte('*')
				i++
				continue
			}
			b.WriteString(element("em", r.classes.Em, r.inline(text[i+1:end])))
			i = end + 1
		case text[i] == '`':
			end := strings.IndexByte(text[i+1:], '`')
			if end < 0 {
				b.WriteByte('`')
				i++
				continue
			}
			b.WriteString(element("code", r.classes.Code, text[i+1:i+1+end]))
			i += end + 2
		default:
			next := strings.IndexAny(text[i:], "*`")
			if next < 0 {
				b.WriteString(text[i:])
				i = len(text)
				continue
			}
			b.WriteString(text[i : i+next])
			i += next
		}
	}
	return b.String()
}

// closingStar finds the "*" closing an italic run opened before from,
// stepping over complete "**...**" spans nested inside it.
func closingStar(text string, from int) int {
	for j := from; j < len(text); j++ {
		if text[j] != '*' {
			continue
		}
		if strings.HasPrefix(text[j:], "**") {
			if end := strings.Index(text[j+2:], "**"); end >= 0 {
				j += end + 3
				continue
			}
		}
		return j
	}
	return -1
}

func element(tag, class, content string) string {
	var b strings.Builder
	b.Grow(len(tag)*2 + len(class) + len(content) + 13)
	b.WriteByte('<')
	b.WriteString(tag)
	if class != "" {
		b.WriteString(` class="`)
		b.WriteString(class)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return b.String()
}
