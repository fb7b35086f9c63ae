package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"book-deconstructor/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SameSessionSameController(t *testing.T) {
	r, err := NewRegistry(4, &scriptedGateway{outcomes: []outcome{succeed("a")}}, storage.NewMemory())
	require.NoError(t, err)

	ctx := context.Background()
	assert.Same(t, r.Get(ctx, "s1"), r.Get(ctx, "s1"))
	assert.NotSame(t, r.Get(ctx, "s1"), r.Get(ctx, "s2"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_SessionsHaveSeparateHistory(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(4, &scriptedGateway{outcomes: []outcome{succeed("a")}}, storage.NewMemory())
	require.NoError(t, err)

	require.NoError(t, r.Get(ctx, "s1").Submit(ctx, "自私的基因"))

	assert.Equal(t, []string{"自私的基因"}, r.Get(ctx, "s1").Snapshot().History)
	assert.Empty(t, r.Get(ctx, "s2").Snapshot().History)
}

func TestRegistry_EvictedSessionReloadsHistory(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(1, &scriptedGateway{outcomes: []outcome{succeed("a")}}, storage.NewMemory())
	require.NoError(t, err)

	first := r.Get(ctx, "s1")
	require.NoError(t, first.Submit(ctx, "自私的基因"))

	r.Get(ctx, "s2") // evicts s1
	again := r.Get(ctx, "s1")

	assert.NotSame(t, first, again)
	assert.Equal(t, []string{"自私的基因"}, again.Snapshot().History)
	assert.Nil(t, again.Snapshot().Result)
}

// gatedStorage blocks Get for one key until release is closed
type gatedStorage struct {
	*storage.Memory
	key     string
	started chan struct{}
	release chan struct{}
}

func (g *gatedStorage) Get(ctx context.Context, key string) (string, error) {
	if key == g.key {
		close(g.started)
		<-g.release
	}
	return g.Memory.Get(ctx, key)
}

func TestRegistry_SlowHistoryLoadDoesNotBlockOtherSessions(t *testing.T) {
	ctx := context.Background()
	s := &gatedStorage{
		Memory:  storage.NewMemory(),
		key:     "book_history:slow",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r, err := NewRegistry(4, &scriptedGateway{outcomes: []outcome{succeed("a")}}, s)
	require.NoError(t, err)

	slow := make(chan *Controller)
	go func() { slow <- r.Get(ctx, "slow") }()
	<-s.started

	fast := make(chan *Controller)
	go func() { fast <- r.Get(ctx, "fast") }()
	select {
	case c := <-fast:
		assert.NotNil(t, c)
	case <-time.After(2 * time.Second):
		t.Fatal("session creation waited on another session's history load")
	}

	close(s.release)
	assert.NotNil(t, <-slow)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ConcurrentGetSharesController(t *testing.T) {
	ctx := context.Background()
	r, err := NewRegistry(4, &scriptedGateway{outcomes: []outcome{succeed("a")}}, storage.NewMemory())
	require.NoError(t, err)

	var wg sync.WaitGroup
	got := make([]*Controller, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = r.Get(ctx, "s1")
		}()
	}
	wg.Wait()

	for _, c := range got[1:] {
		assert.Same(t, got[0], c)
	}
	assert.Equal(t, 1, r.Len())
}
