package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenStore struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakeTokenStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func (f *fakeTokenStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNewTokenPruner_DefaultsInterval(t *testing.T) {
	p := NewTokenPruner(&fakeTokenStore{}, TokenPrunerConfig{})
	assert.Equal(t, time.Hour, p.interval)
}

func TestTokenPruner_PrunesOnStartAndEveryTick(t *testing.T) {
	store := &fakeTokenStore{}
	p := NewTokenPruner(store, TokenPrunerConfig{Interval: 10 * time.Millisecond})
	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.count() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop after cancel")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, fixed, store.calls[0])
}

func TestTokenPruner_KeepsRunningAfterFailure(t *testing.T) {
	store := &fakeTokenStore{err: errors.New("database unavailable")}
	p := NewTokenPruner(store, TokenPrunerConfig{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Start(ctx)

	require.Eventually(t, func() bool { return store.count() >= 2 }, time.Second, 5*time.Millisecond)
}
