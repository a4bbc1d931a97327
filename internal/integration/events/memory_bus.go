// Package events delivers ledger change notifications to live aggregators.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// DefaultBufferSize is the per-subscriber queue length.
const DefaultBufferSize = 16

type subscription struct {
	ch chan entity.LedgerEvent
}

// MemoryBus fans ledger events out to subscribers in the same process.
type MemoryBus struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[*subscription]struct{}
	bufferSize  int
	logger      *slog.Logger
}

// NewMemoryBus creates an in-process bus. A non-positive bufferSize uses DefaultBufferSize.
func NewMemoryBus(bufferSize int) *MemoryBus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &MemoryBus{
		subscribers: make(map[uuid.UUID]map[*subscription]struct{}),
		bufferSize:  bufferSize,
		logger:      slog.Default().With("component", "memory_bus"),
	}
}

// Publish delivers the event to every subscriber of the user. A subscriber whose
// queue is full misses the event; the next one triggers a full recompute anyway.
func (b *MemoryBus) Publish(_ context.Context, event entity.LedgerEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers[event.UserID] {
		select {
		case sub.ch <- event:
		default:
			b.logger.Warn("Dropped ledger event for slow subscriber",
				"user_id", event.UserID,
				"kind", event.Kind,
			)
		}
	}
	return nil
}

// Subscribe registers a subscriber for the user. The channel closes when ctx is done.
func (b *MemoryBus) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.LedgerEvent, error) {
	sub := &subscription{ch: make(chan entity.LedgerEvent, b.bufferSize)}

	b.mu.Lock()
	if b.subscribers[userID] == nil {
		b.subscribers[userID] = make(map[*subscription]struct{})
	}
	b.subscribers[userID][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()

		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers[userID], sub)
		if len(b.subscribers[userID]) == 0 {
			delete(b.subscribers, userID)
		}
		close(sub.ch)
	}()

	return sub.ch, nil
}

// SubscriberCount returns the number of live subscriptions of the user.
func (b *MemoryBus) SubscriberCount(userID uuid.UUID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[userID])
}
