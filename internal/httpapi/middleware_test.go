package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marches-engine/internal/events"
)

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()

	var body struct {
		Error APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestMethodMux_UnsupportedMethodGetsErrorEnvelope(t *testing.T) {
	t.Parallel()

	h := methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) { writeJSON(w, map[string]bool{"ok": true}) },
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodDelete, "/notices", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "method_not_allowed", decodeAPIError(t, rec).Code)
}

func TestRequestID_EchoedAndCarriedIntoErrorBody(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusBadRequest, "bad_input", "nope")
	})
	h := Chain(inner, RequestID)

	req := httptest.NewRequest(http.MethodGet, "/notices", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "req-abc", rec.Header().Get("X-Request-ID"))
	require.Equal(t, "req-abc", decodeAPIError(t, rec).RequestID)
}

func TestRecover_TurnsPanicInto500(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := Chain(inner, RequestID, Recover)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notices", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal_error", decodeAPIError(t, rec).Code)
}

func TestCors_PreflightShortCircuits(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the handler")
	})
	h := Chain(inner, Cors)

	req := httptest.NewRequest(http.MethodOptions, "/notices", nil)
	req.Header.Set("Origin", "tauri://localhost")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "tauri://localhost", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeSSE_StreamsThroughAccessLog(t *testing.T) {
	t.Parallel()

	eh := EventsHandler{Hub: events.NewHub()}
	h := Chain(http.HandlerFunc(eh.ServeSSE), RequestID, AccessLog)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), `"type":"ping"`)
}
