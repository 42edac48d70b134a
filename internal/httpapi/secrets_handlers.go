package httpapi

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"marches-engine/internal/config"
	"marches-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // config.Config
}

// SetFeedToken stores the bearer token for an authenticated feed host in
// the OS keychain. The token itself never touches the config file.
func (h SecretsHandler) SetFeedToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	account := cfg.Feed.KeyringAccount
	if account == "" {
		WriteError(w, r, http.StatusBadRequest, "no_keyring_account", "feed.keyring_account is not configured")
		return
	}

	if err := secrets.SetFeedToken(account, body.Token); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "keyring_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
