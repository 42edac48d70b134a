package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThemeGet_DefaultsToLight(t *testing.T) {
	t.Parallel()

	h := ThemeHandler{KV: newMemKV()}

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/theme", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"theme":"light"}`, rec.Body.String())
}

func TestThemePut_RoundTrip(t *testing.T) {
	t.Parallel()

	h := ThemeHandler{KV: newMemKV()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{"theme":"dark"}`))
	h.Put(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/theme", nil))

	var body struct {
		Theme string `json:"theme"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "dark", body.Theme)
}

func TestThemePut_RejectsUnknownValue(t *testing.T) {
	t.Parallel()

	h := ThemeHandler{KV: newMemKV()}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/theme", strings.NewReader(`{"theme":"solarized"}`))
	h.Put(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
