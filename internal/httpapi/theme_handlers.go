package httpapi

import (
	"encoding/json"
	"net/http"

	"marches-engine/internal/theme"
)

type ThemeHandler struct {
	KV theme.KV
}

func (h ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"theme": theme.Get(r.Context(), h.KV)})
}

func (h ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if err := theme.Set(r.Context(), h.KV, body.Theme); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_theme", err.Error())
		return
	}
	// Storage faults are swallowed inside theme.Set; the preference is
	// best-effort by contract.
	writeJSON(w, map[string]string{"theme": body.Theme})
}
