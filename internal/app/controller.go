// Package app holds the state controller behind every front-end.
package app

import (
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"sync"

	"book-deconstructor/internal/deconstruct"
	"book-deconstructor/internal/deconstruct/deps"
	"book-deconstructor/internal/history"
	"book-deconstructor/internal/model"
)

var (
	// ErrBlankQuery is returned for empty or whitespace-only input. No state changes.
	ErrBlankQuery = errors.New("query is blank")
	// ErrInFlight is returned when a request is already outstanding
	ErrInFlight = errors.New("a deconstruction is already in progress")
	// ErrNothingToRetry is returned by retry outside the error state
	ErrNothingToRetry = errors.New("nothing to retry")
	// ErrNoSuchEntry is returned for a history index that does not exist
	ErrNoSuchEntry = errors.New("no such history entry")
)

// Snapshot is an immutable copy of controller state for renderers.
// Result points at a record that is never modified after it is stored.
type Snapshot struct {
	Status       model.Status              `json:"status"`
	Input        string                    `json:"input"`
	Query        string                    `json:"query"`
	Result       *model.BookDeconstruction `json:"result"`
	ErrorMessage string                    `json:"errorMessage"`
	History      []string                  `json:"history"`
}

// Loading reports whether a request is outstanding
func (s Snapshot) Loading() bool {
	return s.Status == model.StatusLoading
}

// Observer receives a snapshot after every state transition
type Observer func(Snapshot)

// Controller owns the state of one client: input, status, result, error
// message and history. It is safe for concurrent use; only one request may
// be outstanding at a time and further submissions are rejected with ErrInFlight.
type Controller struct {
	gateway deps.Deconstructor
	store   *history.Store

	saveMu sync.Mutex // serializes history writes

	mu        sync.Mutex
	status    model.Status
	input     string
	query     string
	result    *model.BookDeconstruction
	errMsg    string
	history   []string
	seq       uint64
	observers []Observer
}

// NewController creates a controller in the idle state and loads history from store
func NewController(ctx context.Context, gateway deps.Deconstructor, store *history.Store) *Controller {
	return &Controller{
		gateway: gateway,
		store:   store,
		status:  model.StatusIdle,
		history: store.Load(ctx),
	}
}

// Observe registers fn to be called after every transition
func (c *Controller) Observe(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	h := make([]string, len(c.history))
	copy(h, c.history)
	return Snapshot{
		Status:       c.status,
		Input:        c.input,
		Query:        c.query,
		Result:       c.result,
		ErrorMessage: c.errMsg,
		History:      h,
	}
}

// SetInput updates the input text without submitting
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.input = text
	snap, obs := c.snapshotLocked(), c.observers
	c.mu.Unlock()
	notify(obs, snap)
}

// Request is the token for one outstanding gateway call
type Request struct {
	c     *Controller
	seq   uint64
	query string
}

// Query returns the submitted title
func (r *Request) Query() string {
	return r.query
}

// Begin validates query and moves to loading. The returned Request must be Run.
func (c *Controller) Begin(query string) (*Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrBlankQuery
	}

	c.mu.Lock()
	if c.status == model.StatusLoading {
		c.mu.Unlock()
		return nil, ErrInFlight
	}
	c.seq++
	c.status = model.StatusLoading
	c.errMsg = ""
	c.query = query
	c.input = query
	req := &Request{c: c, seq: c.seq, query: query}
	snap, obs := c.snapshotLocked(), c.observers
	c.mu.Unlock()

	notify(obs, snap)
	return req, nil
}

// BeginRetry re-issues the last submitted query from the error state
func (c *Controller) BeginRetry() (*Request, error) {
	c.mu.Lock()
	status, query := c.status, c.query
	c.mu.Unlock()

	if status == model.StatusLoading {
		return nil, ErrInFlight
	}
	if status != model.StatusError || query == "" {
		return nil, ErrNothingToRetry
	}
	return c.Begin(query)
}

// BeginHistory puts history entry index into the input and submits it
func (c *Controller) BeginHistory(index int) (*Request, error) {
	c.mu.Lock()
	if index < 0 || index >= len(c.history) {
		c.mu.Unlock()
		return nil, ErrNoSuchEntry
	}
	entry := c.history[index]
	c.mu.Unlock()

	return c.Begin(entry)
}

// BeginHistoryEntry submits entry if it is still in the history, wherever
// it now sits. Callers that rendered the history earlier pass the entry they
// showed rather than its position.
func (c *Controller) BeginHistoryEntry(entry string) (*Request, error) {
	c.mu.Lock()
	found := slices.Contains(c.history, entry)
	c.mu.Unlock()

	if !found {
		return nil, ErrNoSuchEntry
	}
	return c.Begin(entry)
}

// Run performs the gateway call and applies its outcome. It always runs to
// completion; ctx is passed to the gateway untouched.
func (r *Request) Run(ctx context.Context) {
	c := r.c
	book, err := c.gateway.Deconstruct(ctx, r.query)

	c.mu.Lock()
	if r.seq != c.seq {
		c.mu.Unlock()
		log.Printf("[STATE] Discarding superseded response for %q", r.query)
		return
	}

	if err != nil {
		log.Printf("[STATE] Deconstruction failed for %q: %v", r.query, err)
		msg := deconstruct.DisplayMessage(err)
		if msg == "" {
			msg = FallbackErrorMessage
		}
		c.status = model.StatusError
		c.errMsg = msg
		snap, obs := c.snapshotLocked(), c.observers
		c.mu.Unlock()
		notify(obs, snap)
		return
	}

	// Result and history change together so no snapshot shows one without the other.
	c.result = book
	c.history = history.Push(c.history, r.query)
	c.status = model.StatusSuccess
	snap, obs := c.snapshotLocked(), c.observers
	c.mu.Unlock()

	notify(obs, snap)
	c.persistHistory(ctx)
}

// persistHistory writes the current history. Failures are logged by the
// store and never change in-memory state.
func (c *Controller) persistHistory(ctx context.Context) {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	latest := make([]string, len(c.history))
	copy(latest, c.history)
	c.mu.Unlock()

	if err := c.store.Save(ctx, latest); err != nil {
		log.Printf("[STATE] History not persisted: %v", err)
	}
}

// Submit is Begin followed by Run
func (c *Controller) Submit(ctx context.Context, query string) error {
	req, err := c.Begin(query)
	if err != nil {
		return err
	}
	req.Run(ctx)
	return nil
}

// Retry is BeginRetry followed by Run
func (c *Controller) Retry(ctx context.Context) error {
	req, err := c.BeginRetry()
	if err != nil {
		return err
	}
	req.Run(ctx)
	return nil
}

// SelectHistory is BeginHistory followed by Run
func (c *Controller) SelectHistory(ctx context.Context, index int) error {
	req, err := c.BeginHistory(index)
	if err != nil {
		return err
	}
	req.Run(ctx)
	return nil
}

func notify(observers []Observer, snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}
