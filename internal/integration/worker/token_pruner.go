// Package worker provides background maintenance jobs.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredTokenStore deletes refresh tokens past their expiry.
type ExpiredTokenStore interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenPrunerConfig holds configuration for the token pruner.
type TokenPrunerConfig struct {
	Interval time.Duration
}

// DefaultTokenPrunerConfig returns the default pruner configuration.
func DefaultTokenPrunerConfig() TokenPrunerConfig {
	return TokenPrunerConfig{
		Interval: time.Hour,
	}
}

// TokenPruner periodically removes expired refresh tokens.
type TokenPruner struct {
	store    ExpiredTokenStore
	interval time.Duration
	now      func() time.Time
}

// NewTokenPruner creates a new token pruner.
func NewTokenPruner(store ExpiredTokenStore, config TokenPrunerConfig) *TokenPruner {
	interval := config.Interval
	if interval <= 0 {
		interval = DefaultTokenPrunerConfig().Interval
	}
	return &TokenPruner{
		store:    store,
		interval: interval,
		now:      time.Now,
	}
}

// Start runs the pruner loop. It blocks until the context is cancelled.
func (p *TokenPruner) Start(ctx context.Context) {
	slog.Info("Token pruner started", "interval", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Token pruner shutting down")
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *TokenPruner) prune(ctx context.Context) {
	removed, err := p.store.DeleteExpired(ctx, p.now())
	if err != nil {
		slog.Warn("Failed to prune expired refresh tokens", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Pruned expired refresh tokens", "count", removed)
	}
}
