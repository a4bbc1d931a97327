// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// CreateBatch inserts several categories in one statement.
	CreateBatch(ctx context.Context, categories []*entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByOwner retrieves all categories of an owner, optionally filtered by type.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// FindRootsByOwnerAndType retrieves the categories without a parent for an owner and type.
	FindRootsByOwnerAndType(ctx context.Context, ownerID uuid.UUID, categoryType entity.CategoryType) ([]*entity.Category, error)

	// ExistsByNameAndOwner checks whether another category of the owner and type already uses name.
	// excludeID skips the category being renamed; pass uuid.Nil on create.
	ExistsByNameAndOwner(ctx context.Context, name string, ownerID uuid.UUID, categoryType entity.CategoryType, excludeID uuid.UUID) (bool, error)

	// CountChildren returns the number of categories whose parent is id.
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category and detaches the entries that referenced it.
	Delete(ctx context.Context, id uuid.UUID) error
}
