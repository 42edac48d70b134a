// Package viewed tracks which notices the user has already opened. The set
// only grows during a session and survives restarts through the KV store.
// Tracking is best-effort: a storage fault degrades to "nothing remembered"
// and is never surfaced to the caller.
package viewed

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"sync"
)

// StorageKey is the fixed KV key; the value is a JSON array of identity
// strings, same wire shape the web viewer kept in browser storage.
const StorageKey = "viewed_notice_ids"

// KV is the storage capability the set persists through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Store struct {
	kv KV

	mu  sync.RWMutex
	ids map[string]struct{}
}

func New(kv KV) *Store {
	return &Store{kv: kv, ids: make(map[string]struct{})}
}

// Load replaces the in-memory set with the persisted one. A missing,
// corrupt, or non-array value leaves the set empty.
func (s *Store) Load(ctx context.Context) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		log.Printf("level=warn msg=\"viewed set read failed\" err=%v", err)
		return
	}
	if !ok {
		return
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Printf("level=warn msg=\"viewed set unreadable, starting empty\" err=%v", err)
		return
	}

	next := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			next[id] = struct{}{}
		}
	}

	s.mu.Lock()
	s.ids = next
	s.mu.Unlock()
}

func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// MarkViewed adds id to the set and persists immediately. Empty ids are
// ignored (a notice without any identity cannot be tracked). A failed
// write keeps the mark for the current session only.
func (s *Store) MarkViewed(ctx context.Context, id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	s.ids[id] = struct{}{}
	s.mu.Unlock()

	s.save(ctx)
}

func (s *Store) save(ctx context.Context) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids) // deterministic value, friendlier diffs

	b, err := json.Marshal(ids)
	if err != nil {
		log.Printf("level=warn msg=\"viewed set marshal failed\" err=%v", err)
		return
	}
	if err := s.kv.Set(ctx, StorageKey, string(b)); err != nil {
		log.Printf("level=warn msg=\"viewed set write failed\" err=%v", err)
	}
}
