package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// EventPublisher announces ledger changes to interested aggregators.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}

// EventSubscriber delivers the ledger events of one user.
type EventSubscriber interface {
	// Subscribe returns a channel of the user's events. The channel is closed once ctx is done.
	Subscribe(ctx context.Context, userID uuid.UUID) (<-chan entity.LedgerEvent, error)
}
