// Package markdown renders text component source into markup.
//
// The default engine is a deliberately small subset renderer: line-anchored
// headings (#, ##, ###), "- " list items merged into one <ul>, "> " quotes,
// paragraphs split on blank lines with <br> for single newlines, and inline
// **bold**, *italic* and `code`. Input is trusted and not escaped; enable the
// sanitizer when markup reaches untrusted viewers. A goldmark-backed engine is
// available for hosts that need a full CommonMark grammar.
package markdown
