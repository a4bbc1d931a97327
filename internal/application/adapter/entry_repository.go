package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// EntryFilter narrows entry queries. Dates are inclusive calendar dates.
type EntryFilter struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Type      *entity.CategoryType
	// CategoryID restricts results to one category. Ignored when Uncategorized is set.
	CategoryID *uuid.UUID
	// Uncategorized restricts results to entries without a category.
	Uncategorized bool
}

// EntryRepository defines the interface for entry persistence operations.
type EntryRepository interface {
	// Create creates a new entry in the database.
	Create(ctx context.Context, entry *entity.Entry) error

	// FindByID retrieves an entry by its ID with its category loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)

	// FindByFilter retrieves entries matching the filter with their categories loaded,
	// newest date first.
	FindByFilter(ctx context.Context, filter EntryFilter) ([]*entity.Entry, error)

	// Update updates an existing entry in the database.
	Update(ctx context.Context, entry *entity.Entry) error

	// Delete removes an entry from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
