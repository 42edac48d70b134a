package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"

	"golang.org/x/time/rate"

	"marches-engine/internal/refresh"
)

type RefreshHandler struct {
	Status  *atomic.Value // refresh.Status
	Run     func(ctx context.Context) error
	Limiter *rate.Limiter
}

func (h RefreshHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if v := h.Status.Load(); v != nil {
		writeJSON(w, v.(refresh.Status))
		return
	}
	writeJSON(w, refresh.Status{})
}

// Trigger starts a manual refresh. Throttled so a click-happy UI cannot
// hammer the feed host. The status check is a fast-path for a friendly
// response; Run itself refuses to overlap another refresh.
func (h RefreshHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if st, ok := h.Status.Load().(refresh.Status); ok && st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}
	if !h.Limiter.Allow() {
		WriteError(w, r, http.StatusTooManyRequests, "refresh_throttled", "refresh was triggered too recently")
		return
	}

	go func() {
		// detach from the request; the refresh outlives it
		_ = h.Run(context.Background())
	}()

	WriteJSON(w, http.StatusAccepted, map[string]any{"ok": true})
}
