package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"marches-engine/internal/dates"
	"marches-engine/internal/events"
	"marches-engine/internal/feed"
	"marches-engine/internal/filter"
	"marches-engine/internal/presenter"
	"marches-engine/internal/viewed"
)

type NoticesHandler struct {
	FeedVal *atomic.Value // feed.Snapshot
	Viewed  *viewed.Store
	Hub     *events.Hub
}

func (h NoticesHandler) snapshot() feed.Snapshot {
	if v := h.FeedVal.Load(); v != nil {
		return v.(feed.Snapshot)
	}
	return feed.Snapshot{}
}

// List applies the four filter controls and returns the sorted cards. An
// empty result is a normal outcome; the UI shows its empty state.
func (h NoticesHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seen := filter.SeenState(q.Get("seen"))
	if !filter.ValidSeenState(seen) {
		WriteError(w, r, http.StatusBadRequest, "bad_seen_state", "seen must be any, seen or unseen")
		return
	}

	crit := filter.Criteria{
		Department: q.Get("department"),
		Source:     q.Get("source"),
		Search:     strings.TrimSpace(q.Get("q")),
		Seen:       seen,
	}

	snap := h.snapshot()
	visible := filter.Apply(snap.Feed.Notices, crit, h.Viewed)
	cards := presenter.BuildAll(visible, h.Viewed)

	writeJSON(w, map[string]any{
		"cards": cards,
		"total": len(snap.Feed.Notices),
	})
}

// MarkViewed records a card activation. An empty or absent id is a no-op,
// matching the store contract for notices without a usable identity.
func (h NoticesHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if body.ID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.Viewed.MarkViewed(r.Context(), body.ID)

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, "notice_viewed", 1, map[string]any{"id": body.ID}))
	writeJSON(w, map[string]any{"ok": true, "id": body.ID})
}

// Filters exposes the facet values for the department and source selects.
func (h NoticesHandler) Filters(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	writeJSON(w, filter.CollectFacets(snap.Feed.Notices))
}

// Meta reports feed provenance: the pipeline's generated_at (falling back
// to the newest publication date), counts, and the last load error if the
// startup fetch failed.
func (h NoticesHandler) Meta(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()

	generatedAt := snap.Feed.GeneratedAt
	if generatedAt == "" {
		generatedAt = dates.LatestPublication(snap.Feed.Notices)
	}

	loadedAt := ""
	if !snap.LoadedAt.IsZero() {
		loadedAt = snap.LoadedAt.UTC().Format(time.RFC3339)
	}

	writeJSON(w, map[string]any{
		"generated_at": generatedAt,
		"count":        len(snap.Feed.Notices),
		"loaded_at":    loadedAt,
		"last_error":   snap.Err,
	})
}
