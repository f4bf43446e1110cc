// Package http provides the optional HTTP adapter for the page builder.
//
// Routes mount under /builder/api by default:
//   - Palette: /palette
//   - Sessions: /sessions, /sessions/{session}, /sessions/{session}/flush
//   - Layout edits: /sessions/{session}/drop, /sessions/{session}/items,
//     /sessions/{session}/items/{id}, /sessions/{session}/items/{id}/toggle-width,
//     /sessions/{session}/items/{id}/payload, /sessions/{session}/reorder
//   - Editor state: /sessions/{session}/selection, /sessions/{session}/preview-mode
//   - Preview: /sessions/{session}/preview (text/html)
//   - Markdown: /markdown/render
//
// Every layout mutation runs through the layout command handlers. Host
// applications can register handlers on their own mux as needed.
package http
