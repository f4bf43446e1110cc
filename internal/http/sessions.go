package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-pagebuilder/internal/layout"
	"github.com/goliatone/go-pagebuilder/internal/session"
)

type sessionCreatePayload struct {
	Name string `json:"name"`
}

type sessionResponse struct {
	session.Info
	Layout layout.Snapshot `json:"layout"`
}

func (api *BuilderAPI) registerSessionRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "sessions")
	mux.HandleFunc("GET "+root, api.handleSessionList)
	mux.HandleFunc("POST "+root, api.handleSessionOpen)
	mux.HandleFunc("GET "+root+"/{session}", api.handleSessionGet)
	mux.HandleFunc("DELETE "+root+"/{session}", api.handleSessionClose)
	mux.HandleFunc("POST "+root+"/{session}/flush", api.handleSessionFlush)
}

func (api *BuilderAPI) handleSessionList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.sessions.List(r.Context()))
}

func (api *BuilderAPI) handleSessionOpen(w http.ResponseWriter, r *http.Request) {
	var payload sessionCreatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, err.Error())
		return
	}
	sess, created, err := api.sessions.Open(r.Context(), payload.Name)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, describeSession(sess))
}

func (api *BuilderAPI) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, err := api.sessions.Get(r.Context(), r.PathValue("session"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, describeSession(sess))
}

func (api *BuilderAPI) handleSessionClose(w http.ResponseWriter, r *http.Request) {
	if err := api.sessions.Close(r.Context(), r.PathValue("session")); err != nil {
		api.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *BuilderAPI) handleSessionFlush(w http.ResponseWriter, r *http.Request) {
	sess, err := api.sessions.Get(r.Context(), r.PathValue("session"))
	if err != nil {
		api.fail(w, r, err)
		return
	}
	applied := sess.Committer.Flush()
	writeJSON(w, http.StatusOK, map[string]any{
		"applied": applied,
		"layout":  sess.Editor.Snapshot(),
	})
}

func describeSession(sess *session.Session) sessionResponse {
	return sessionResponse{Info: sess.Info(), Layout: sess.Editor.Snapshot()}
}
