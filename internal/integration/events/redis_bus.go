package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// DefaultChannelPrefix prefixes the per-user pub/sub channels.
const DefaultChannelPrefix = "kakeibo:ledger"

// RedisBus carries ledger events over Redis pub/sub so every API replica sees them.
type RedisBus struct {
	client     *redis.Client
	prefix     string
	bufferSize int
	logger     *slog.Logger
}

// NewRedisBus creates a bus publishing on "<prefix>:<user_id>" channels.
func NewRedisBus(client *redis.Client, prefix string, bufferSize int) *RedisBus {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &RedisBus{
		client:     client,
		prefix:     prefix,
		bufferSize: bufferSize,
		logger:     slog.Default().With("component", "redis_bus"),
	}
}

// Channel returns the pub/sub channel name of a user.
func (b *RedisBus) Channel(userID uuid.UUID) string {
	return b.prefix + ":" + userID.String()
}

// Publish sends the event as JSON on the user's channel.
func (b *RedisBus) Publish(ctx context.Context, event entity.LedgerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode ledger event: %w", err)
	}
	if err := b.client.Publish(ctx, b.Channel(event.UserID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish ledger event: %w", err)
	}
	return nil
}

// Subscribe listens on the user's channel until ctx is done.
// The subscription is confirmed before Subscribe returns.
func (b *RedisBus) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.LedgerEvent, error) {
	pubsub := b.client.Subscribe(ctx, b.Channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to ledger events: %w", err)
	}

	out := make(chan entity.LedgerEvent, b.bufferSize)
	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var event entity.LedgerEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					b.logger.Warn("Discarded malformed ledger event", "channel", msg.Channel, "error", err)
					continue
				}

				select {
				case out <- event:
				default:
					b.logger.Warn("Dropped ledger event for slow subscriber",
						"user_id", event.UserID,
						"kind", event.Kind,
					)
				}
			}
		}
	}()

	return out, nil
}
