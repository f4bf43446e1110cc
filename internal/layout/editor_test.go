package layout_test

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

type warnLogger struct {
	warnings []string
}

func (l *warnLogger) Trace(string, ...any)                          {}
func (l *warnLogger) Debug(string, ...any)                          {}
func (l *warnLogger) Info(string, ...any)                           {}
func (l *warnLogger) Warn(msg string, _ ...any)                     { l.warnings = append(l.warnings, msg) }
func (l *warnLogger) Error(string, ...any)                          {}
func (l *warnLogger) Fatal(string, ...any)                          {}
func (l *warnLogger) WithContext(context.Context) interfaces.Logger { return l }

func sequentialIDs() layout.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func newEditor(t *testing.T, kinds ...layout.Kind) *layout.Editor {
	t.Helper()
	editor := layout.NewEditor(layout.WithIDGenerator(sequentialIDs()))
	for i, kind := range kinds {
		editor.InsertFromPalette(kind, i)
	}
	return editor
}

func TestEditorInsertScenario(t *testing.T) {
	editor := layout.NewEditor()

	text := editor.InsertFromPalette(layout.KindText, 0)
	snapshot := editor.Snapshot()
	if snapshot.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", snapshot.Len())
	}
	first := snapshot.Items[0]
	if first.Kind != layout.KindText || !first.FullWidth {
		t.Fatalf("unexpected first item %#v", first)
	}
	payload, ok := first.Payload.(layout.TextPayload)
	if !ok || !strings.Contains(payload.Content, "# Welcome") {
		t.Fatalf("expected default sample content, got %#v", first.Payload)
	}

	image := editor.InsertFromPalette(layout.KindImage, 0)
	snapshot = editor.Snapshot()
	if snapshot.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", snapshot.Len())
	}
	if snapshot.Items[0].ID != image.ID || snapshot.Items[0].Kind != layout.KindImage {
		t.Fatalf("expected image at index 0, got %#v", snapshot.Items[0])
	}
	if snapshot.Items[1].ID != text.ID {
		t.Fatalf("expected text at index 1, got %#v", snapshot.Items[1])
	}
	img := snapshot.Items[0].Payload.(layout.ImagePayload)
	if img.Src != layout.DefaultImageSrc || img.Alt != layout.DefaultImageAlt || img.SourceKind != layout.SourceURL {
		t.Fatalf("unexpected default image payload %#v", img)
	}
}

func TestEditorInsertClampsIndex(t *testing.T) {
	editor := newEditor(t, layout.KindText, layout.KindText)

	low := editor.InsertFromPalette(layout.KindImage, -5)
	high := editor.InsertFromPalette(layout.KindImage, 99)

	ids := editor.Snapshot().IDs()
	if ids[0] != low.ID || ids[len(ids)-1] != high.ID {
		t.Fatalf("expected clamped inserts at both ends, got %v", ids)
	}
}

func TestEditorInsertUnknownKindFallsBackToText(t *testing.T) {
	editor := layout.NewEditor()
	item := editor.InsertFromPalette(layout.Kind("video"), 0)
	if item.Kind != layout.KindText {
		t.Fatalf("expected text fallback, got %q", item.Kind)
	}
}

func TestEditorIDsAreUniqueEvenWhenGeneratorRepeats(t *testing.T) {
	editor := layout.NewEditor(layout.WithIDGenerator(func() string { return "fixed" }))
	a := editor.InsertFromPalette(layout.KindText, 0)
	b := editor.InsertFromPalette(layout.KindText, 0)
	if a.ID != "fixed" || b.ID == "" || b.ID == a.ID {
		t.Fatalf("expected unique ids, got %q and %q", a.ID, b.ID)
	}
}

func TestEditorWarnsWhenGeneratorKeepsColliding(t *testing.T) {
	logger := &warnLogger{}
	editor := layout.NewEditor(
		layout.WithIDGenerator(func() string { return "fixed" }),
		layout.WithLogger(logger),
	)
	editor.InsertFromPalette(layout.KindText, 0)
	if len(logger.warnings) != 0 {
		t.Fatalf("expected no warning for the first id, got %v", logger.warnings)
	}
	editor.InsertFromPalette(layout.KindText, 0)
	if !slices.Contains(logger.warnings, "layout.item.id_generator_collision") {
		t.Fatalf("expected collision warning, got %v", logger.warnings)
	}
}

func TestEditorInsertThenRemoveRestoresSequence(t *testing.T) {
	for index := range 4 {
		editor := newEditor(t, layout.KindText, layout.KindImage, layout.KindText)
		before := editor.Snapshot()

		item := editor.InsertFromPalette(layout.KindImage, index)
		if !editor.Remove(item.ID) {
			t.Fatalf("index %d: expected remove to apply", index)
		}
		if after := editor.Snapshot(); !reflect.DeepEqual(before.Items, after.Items) {
			t.Fatalf("index %d: sequence not restored\nbefore %#v\nafter  %#v", index, before.Items, after.Items)
		}
	}
}

func TestEditorReorderRoundTrip(t *testing.T) {
	kinds := []layout.Kind{layout.KindText, layout.KindImage, layout.KindText, layout.KindImage}
	for i := range kinds {
		for j := range kinds {
			if i == j {
				continue
			}
			editor := newEditor(t, kinds...)
			before := editor.Snapshot().IDs()

			if !editor.Reorder(i, j) {
				t.Fatalf("reorder(%d,%d) not applied", i, j)
			}
			moved := editor.Snapshot().IDs()
			if moved[j] != before[i] {
				t.Fatalf("reorder(%d,%d): expected %s at %d, got %v", i, j, before[i], j, moved)
			}
			editor.Reorder(j, i)
			if after := editor.Snapshot().IDs(); !reflect.DeepEqual(before, after) {
				t.Fatalf("reorder(%d,%d) round trip: before %v after %v", i, j, before, after)
			}
		}
	}
}

func TestEditorReorderNoOps(t *testing.T) {
	editor := newEditor(t, layout.KindText, layout.KindImage)
	before := editor.Snapshot().IDs()

	cases := [][2]int{{0, 0}, {-1, 0}, {0, 2}, {5, 1}}
	for _, tc := range cases {
		if editor.Reorder(tc[0], tc[1]) {
			t.Fatalf("reorder(%d,%d) should be a no-op", tc[0], tc[1])
		}
	}
	if after := editor.Snapshot().IDs(); !reflect.DeepEqual(before, after) {
		t.Fatalf("sequence changed: %v -> %v", before, after)
	}
}

func TestEditorToggleFullWidthTwiceRestoresFlag(t *testing.T) {
	editor := newEditor(t, layout.KindText)
	id := editor.Snapshot().Items[0].ID

	editor.ToggleFullWidth(id)
	if item, _ := editor.Item(id); item.FullWidth {
		t.Fatalf("expected half width after first toggle")
	}
	editor.ToggleFullWidth(id)
	if item, _ := editor.Item(id); !item.FullWidth {
		t.Fatalf("expected full width after second toggle")
	}
	if editor.ToggleFullWidth("missing") {
		t.Fatalf("expected toggle on missing id to be a no-op")
	}
}

func TestEditorUpdateData(t *testing.T) {
	editor := newEditor(t, layout.KindText, layout.KindImage)
	snapshot := editor.Snapshot()
	textID, imageID := snapshot.Items[0].ID, snapshot.Items[1].ID

	if !editor.UpdateData(textID, layout.TextPayload{Content: "hello"}) {
		t.Fatalf("expected text update to apply")
	}
	if item, _ := editor.Item(textID); item.Payload != (layout.TextPayload{Content: "hello"}) {
		t.Fatalf("payload not replaced: %#v", item.Payload)
	}

	if editor.UpdateData(imageID, layout.TextPayload{Content: "wrong"}) {
		t.Fatalf("expected kind mismatch to be rejected")
	}
	if editor.UpdateData("missing", layout.TextPayload{}) {
		t.Fatalf("expected missing id to be a no-op")
	}
	if editor.UpdateData(textID, nil) {
		t.Fatalf("expected nil payload to be a no-op")
	}

	replacement := layout.ImagePayload{Src: "data:image/png;base64,AAAA", SourceKind: layout.SourceUpload}
	if !editor.UpdateData(imageID, replacement) {
		t.Fatalf("expected image update to apply")
	}
	item, _ := editor.Item(imageID)
	if got := item.Payload.(layout.ImagePayload); got.Alt != "" || !got.Embedded() {
		t.Fatalf("expected wholesale replace, got %#v", got)
	}
}

func TestEditorRemoveClearsSelection(t *testing.T) {
	editor := newEditor(t, layout.KindText, layout.KindImage)
	ids := editor.Snapshot().IDs()

	if !editor.Select(ids[1]) {
		t.Fatalf("expected select to apply")
	}
	editor.Remove(ids[0])
	if selected, ok := editor.Selected(); !ok || selected.ID != ids[1] {
		t.Fatalf("removing another item must keep the selection")
	}
	editor.Remove(ids[1])
	if _, ok := editor.Selected(); ok {
		t.Fatalf("expected selection cleared")
	}
	if editor.Snapshot().SelectedID != "" {
		t.Fatalf("expected empty selected id in snapshot")
	}
	if editor.Remove(ids[1]) {
		t.Fatalf("expected second remove to be a no-op")
	}
}

func TestEditorClear(t *testing.T) {
	editor := newEditor(t, layout.KindText, layout.KindImage)
	editor.Select(editor.Snapshot().Items[0].ID)

	if !editor.Clear() {
		t.Fatalf("expected clear to apply")
	}
	snapshot := editor.Snapshot()
	if snapshot.Len() != 0 || snapshot.SelectedID != "" {
		t.Fatalf("expected empty layout, got %#v", snapshot)
	}
	if editor.Clear() {
		t.Fatalf("expected clear on empty layout to report false")
	}
}

func TestEditorSelectionAndPreviewMode(t *testing.T) {
	editor := newEditor(t, layout.KindText)
	if editor.Select("missing") {
		t.Fatalf("expected select on missing id to fail")
	}
	editor.Select(editor.Snapshot().Items[0].ID)
	editor.Deselect()
	if _, ok := editor.Selected(); ok {
		t.Fatalf("expected no selection after deselect")
	}

	if editor.PreviewMode() != layout.PreviewDesktop {
		t.Fatalf("expected desktop default")
	}
	before := editor.Snapshot().Items
	if !editor.SetPreviewMode(layout.PreviewMobile) {
		t.Fatalf("expected mobile mode to apply")
	}
	if editor.SetPreviewMode("tablet") {
		t.Fatalf("expected unknown mode to be rejected")
	}
	snapshot := editor.Snapshot()
	if snapshot.PreviewMode != layout.PreviewMobile {
		t.Fatalf("expected mobile, got %q", snapshot.PreviewMode)
	}
	if !reflect.DeepEqual(before, snapshot.Items) {
		t.Fatalf("preview mode must not touch layout data")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	editor := newEditor(t, layout.KindText)
	snapshot := editor.Snapshot()
	snapshot.Items[0].FullWidth = false

	if item, _ := editor.Item(snapshot.Items[0].ID); !item.FullWidth {
		t.Fatalf("mutating a snapshot leaked into the editor")
	}
}
