// Package feed loads the published notice file the upstream pipeline
// writes (normalized_geometre_latest.json). The engine only consumes that
// file; collection and normalization happen upstream.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"marches-engine/internal/domain"
)

// Feed is the decoded file. Older pipeline runs published a bare array of
// notices; current ones wrap it with a generated_at timestamp. Both shapes
// are accepted without configuration.
type Feed struct {
	GeneratedAt string          `json:"generated_at"`
	Notices     []domain.Notice `json:"notices"`
}

// Snapshot is what the rest of the engine sees: the last good feed plus
// load bookkeeping. Held in an atomic.Value, replaced wholesale on reload.
type Snapshot struct {
	Feed     Feed
	LoadedAt time.Time
	Err      string // "" when the last load succeeded
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Load fetches and decodes the feed from location: an http(s) URL or a
// local file path. token, when non-empty, is sent as a bearer token.
func Load(ctx context.Context, location, token string) (Feed, error) {
	raw, err := fetch(ctx, location, token)
	if err != nil {
		return Feed{}, err
	}
	return Decode(raw)
}

func fetch(ctx context.Context, location, token string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		b, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("feed: read %s: %w", location, err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("feed: bad location %s: %w", location, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("feed: fetch %s: status %s", location, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("feed: read body: %w", err)
	}
	return b, nil
}

// Decode accepts either wire shape and fails on anything else.
func Decode(raw []byte) (Feed, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return Feed{}, fmt.Errorf("feed: empty payload")
	}

	if trimmed[0] == '[' {
		var notices []domain.Notice
		if err := json.Unmarshal(trimmed, &notices); err != nil {
			return Feed{}, fmt.Errorf("feed: decode array: %w", err)
		}
		return Feed{Notices: notices}, nil
	}

	var f Feed
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return Feed{}, fmt.Errorf("feed: decode envelope: %w", err)
	}
	if f.Notices == nil {
		return Feed{}, fmt.Errorf("feed: envelope missing notices array")
	}
	return f, nil
}
