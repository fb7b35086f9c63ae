package app

import (
	"context"
	"fmt"
	"log"
	"sync"

	"book-deconstructor/internal/deconstruct/deps"
	"book-deconstructor/internal/history"
	"book-deconstructor/internal/metrics"
	"book-deconstructor/internal/storage"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSessionCacheSize bounds the number of controllers kept in memory
const DefaultSessionCacheSize = 1024

// Registry maps browser sessions to controllers. Evicted sessions lose their
// in-memory result; their history is reloaded from storage on next use.
type Registry struct {
	mu          sync.Mutex
	controllers *lru.Cache[string, *Controller]
	gateway     deps.Deconstructor
	storage     storage.Storage
}

// NewRegistry creates a registry holding at most size sessions
func NewRegistry(size int, gateway deps.Deconstructor, s storage.Storage) (*Registry, error) {
	if size <= 0 {
		size = DefaultSessionCacheSize
	}
	cache, err := lru.NewWithEvict(size, func(id string, _ *Controller) {
		log.Printf("[SESSION] Evicted session %s", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &Registry{
		controllers: cache,
		gateway:     gateway,
		storage:     s,
	}, nil
}

// Get returns the controller for sessionID, creating it on first use.
// History is loaded without holding the registry lock; if two requests race
// to create the same session, the first one added wins.
func (r *Registry) Get(ctx context.Context, sessionID string) *Controller {
	r.mu.Lock()
	c, ok := r.controllers.Get(sessionID)
	r.mu.Unlock()
	if ok {
		return c
	}

	created := NewController(ctx, r.gateway, history.NewStore(r.storage, history.SessionKey(sessionID)))

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.controllers.Get(sessionID); ok {
		return c
	}
	r.controllers.Add(sessionID, created)
	metrics.SetActiveSessions(r.controllers.Len())
	log.Printf("[SESSION] Created session %s (history=%d)", sessionID, len(created.Snapshot().History))
	return created
}

// Len returns the number of sessions held in memory
func (r *Registry) Len() int {
	return r.controllers.Len()
}
