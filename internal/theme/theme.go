// Package theme persists the light/dark preference of the UI shell.
package theme

import (
	"context"
	"fmt"
	"log"
)

// KV is the storage capability the preference persists through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// StorageKey is the fixed KV key; the value is the literal "light" or "dark".
const StorageKey = "theme"

const (
	Light   = "light"
	Dark    = "dark"
	Default = Light
)

func Valid(v string) bool { return v == Light || v == Dark }

// Get returns the stored preference, or the default when nothing valid is
// stored or the read fails (best-effort, never an error to the caller).
func Get(ctx context.Context, kv KV) string {
	raw, ok, err := kv.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("level=warn msg=\"theme read failed\" err=%v", err)
		return Default
	}
	if !ok || !Valid(raw) {
		return Default
	}
	return raw
}

// Set persists the preference. Rejects values other than light/dark;
// storage faults are logged and swallowed.
func Set(ctx context.Context, kv KV, v string) error {
	if !Valid(v) {
		return fmt.Errorf("theme: invalid value %q", v)
	}
	if err := kv.Set(ctx, StorageKey, v); err != nil {
		log.Printf("level=warn msg=\"theme write failed\" err=%v", err)
	}
	return nil
}
