package adapter

import (
	"context"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// SessionInitializer prepares a user's ledger when a session starts.
type SessionInitializer interface {
	InitializeSession(ctx context.Context, session entity.Session) error
}
