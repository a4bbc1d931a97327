// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"log/slog"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
)

// initializeSession runs the session hook. The user is already authenticated,
// so a failure is logged and the hook runs again on the next login.
func initializeSession(ctx context.Context, initializer adapter.SessionInitializer, user *entity.User) {
	if initializer == nil {
		return
	}
	if err := initializer.InitializeSession(ctx, entity.NewSession(user.ID, user.Email)); err != nil {
		slog.Warn("Failed to initialize session",
			"user_id", user.ID,
			"error", err,
		)
	}
}
