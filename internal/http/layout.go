package http

import (
	"errors"
	"io"
	"net/http"

	layoutcmd "github.com/goliatone/go-pagebuilder/internal/commands/layout"
	"github.com/goliatone/go-pagebuilder/internal/layout"
)

type insertPayload struct {
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	Select bool   `json:"select,omitempty"`
}

type reorderPayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type selectionPayload struct {
	ID string `json:"id"`
}

type previewModePayload struct {
	Mode string `json:"mode"`
}

func (api *BuilderAPI) registerLayoutRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "sessions") + "/{session}"
	mux.HandleFunc("POST "+root+"/drop", api.handleDrop)
	mux.HandleFunc("POST "+root+"/items", api.handleInsert)
	mux.HandleFunc("DELETE "+root+"/items", api.handleClear)
	mux.HandleFunc("POST "+root+"/reorder", api.handleReorder)
	mux.HandleFunc("POST "+root+"/items/{id}/toggle-width", api.handleToggleWidth)
	mux.HandleFunc("PUT "+root+"/items/{id}/payload", api.handleUpdatePayload)
	mux.HandleFunc("DELETE "+root+"/items/{id}", api.handleRemove)
	mux.HandleFunc("PUT "+root+"/selection", api.handleSelection)
	mux.HandleFunc("PUT "+root+"/preview-mode", api.handlePreviewMode)
}

func (api *BuilderAPI) handleDrop(w http.ResponseWriter, r *http.Request) {
	var drop layout.DropResult
	if err := decodeJSON(r, &drop); err != nil {
		badRequest(w, err.Error())
		return
	}
	result := &layoutcmd.Result{}
	err := api.commands.Drop.Execute(r.Context(), layoutcmd.ApplyDropCommand{
		Session: r.PathValue("session"),
		Drop:    drop,
		Result:  result,
	})
	api.respond(w, r, err, http.StatusOK, result)
}

func (api *BuilderAPI) handleInsert(w http.ResponseWriter, r *http.Request) {
	var payload insertPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, err.Error())
		return
	}
	result := &layoutcmd.Result{}
	err := api.commands.Insert.Execute(r.Context(), layoutcmd.InsertComponentCommand{
		Session: r.PathValue("session"),
		Kind:    payload.Kind,
		Index:   payload.Index,
		Select:  payload.Select,
		Result:  result,
	})
	api.respond(w, r, err, http.StatusCreated, result)
}

func (api *BuilderAPI) handleClear(w http.ResponseWriter, r *http.Request) {
	result := &layoutcmd.Result{}
	err := api.commands.Clear.Execute(r.Context(), layoutcmd.ClearLayoutCommand{
		Session:   r.PathValue("session"),
		Confirmed: parseBoolQuery(r.URL.Query().Get("confirm"), false),
		Result:    result,
	})
	api.respond(w, r, err, http.StatusOK, result)
}

func (api *BuilderAPI) handleReorder(w http.ResponseWriter, r *http.Request) {
	var payload reorderPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, err.Error())
		return
	}
	result := &layoutcmd.Result{}
	err := api.commands.Reorder.Execute(r.Context(), layoutcmd.ReorderComponentCommand{
		Session: r.PathValue("session"),
		From:    payload.From,
		To:      payload.To,
		Result:  result,
	})
	api.respond(w, r, err, http.StatusOK, result)
}

func (api *BuilderAPI) handleToggleWidth(w http.ResponseWriter, r *http.Request) {
	result := &layoutcmd.Result{}
	err := api.commands.ToggleWidth.Execute(r.Context(), layoutcmd.ToggleWidthCommand{
		Session: r.PathValue("session"),
		ItemID:  r.PathValue("id"),
		Result:  result,
	})
	api.respond(w, r, err, http.StatusOK, result)
}

func (api *BuilderAPI) handleUpdatePayload(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	debounce := parseBoolQuery(r.URL.Query().Get("debounce"), false)
	result := &layoutcmd.Result{}
	err := api.commands.Update.Execute(r.Context(), layoutcmd.UpdateComponentCommand{
		Session:  r.PathValue("session"),
		ItemID:   r.PathValue("id"),
		Payload:  payload,
		Debounce: debounce,
		Result:   result,
	})
	status := http.StatusOK
	if result.Staged {
		status = http.StatusAccepted
	}
	api.respond(w, r, err, status, result)
}

func (api *BuilderAPI) handleRemove(w http.ResponseWriter, r *http.Request) {
	result := &layoutcmd.Result{}
	err := api.commands.Remove.Execute(r.Context(), layoutcmd.RemoveComponentCommand{
		Session: r.PathValue("session"),
		ItemID:  r.PathValue("id"),
		Result:  result,
	})
	api.respond(w, r, err, http.StatusOK, result)
}

func (api *BuilderAPI) handleSelection(w http.ResponseWriter, r *http.Request) {
	var payload selectionPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	result := &layoutcmd.Result{}
	err := api.commands.Select.Execute(r.Context(), layoutcmd.SelectComponentCommand{
		Session: r.PathValue("session"),
		ItemID:  payload.ID,
		Result:  result,
	})
	api.respond(w, r, err, http.StatusOK, result)
}

func (api *BuilderAPI) handlePreviewMode(w http.ResponseWriter, r *http.Request) {
	var payload previewModePayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, err.Error())
		return
	}
	result := &layoutcmd.Result{}
	err := api.commands.PreviewMode.Execute(r.Context(), layoutcmd.SetPreviewModeCommand{
		Session: r.PathValue("session"),
		Mode:    payload.Mode,
		Result:  result,
	})
	api.respond(w, r, err, http.StatusOK, result)
}

func (api *BuilderAPI) respond(w http.ResponseWriter, r *http.Request, err error, status int, result *layoutcmd.Result) {
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, status, result)
}
