// Package history persists the list of recent book searches.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"book-deconstructor/internal/metrics"
	"book-deconstructor/internal/storage"
)

const (
	// MaxEntries is the number of searches kept
	MaxEntries = 5
	// StorageKey is the key the history array is stored under
	StorageKey = "book_history"
)

// Push returns a new history with query at the front. An existing equal entry
// is moved rather than duplicated, and the result is capped at MaxEntries.
// The input slice is not modified.
func Push(history []string, query string) []string {
	next := make([]string, 0, MaxEntries)
	next = append(next, query)
	for _, h := range history {
		if len(next) == MaxEntries {
			break
		}
		if h != query {
			next = append(next, h)
		}
	}
	return next
}

// Store reads and writes one history list under a single storage key
type Store struct {
	storage storage.Storage
	key     string
}

// NewStore creates a Store for key
func NewStore(s storage.Storage, key string) *Store {
	return &Store{storage: s, key: key}
}

// SessionKey namespaces the history key for one browser session
func SessionKey(sessionID string) string {
	return StorageKey + ":" + sessionID
}

// Load returns the stored history. It never fails: a missing key, a corrupt
// value or a storage error all yield an empty history.
func (s *Store) Load(ctx context.Context) []string {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []string{}
	}
	if err != nil {
		log.Printf("[HISTORY] Failed to load history key=%s: %v", s.key, err)
		metrics.RecordStorageError("load")
		return []string{}
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("[HISTORY] Discarding corrupt history key=%s: %v", s.key, err)
		metrics.RecordStorageError("decode")
		return []string{}
	}
	if entries == nil {
		return []string{}
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Save writes the history. Failures are logged and returned; callers treat
// them as best-effort and keep their in-memory state.
func (s *Store) Save(ctx context.Context, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		log.Printf("[HISTORY] Failed to save history key=%s: %v", s.key, err)
		metrics.RecordStorageError("save")
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}
