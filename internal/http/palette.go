package http

import "net/http"

func (api *BuilderAPI) registerPaletteRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "palette"), api.handlePalette)
}

func (api *BuilderAPI) handlePalette(w http.ResponseWriter, r *http.Request) {
	if api.palette == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, api.palette.Entries())
}
