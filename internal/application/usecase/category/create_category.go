package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Session  entity.Session
	Name     string
	Color    string // Optional, defaults to DefaultCategoryColor
	Type     entity.CategoryType
	ParentID *uuid.UUID
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category    *entity.Category
	Editability Editability
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	scheme       valueobject.CategoryScheme
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, scheme valueobject.CategoryScheme) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		scheme:       scheme,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateColor(input.Color); err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}

	ownerID := input.Session.UserID
	if err := resolveParent(ctx, uc.categoryRepo, uc.scheme, ownerID, input.Type, input.ParentID, uuid.Nil); err != nil {
		return nil, err
	}
	if err := ensureUniqueName(ctx, uc.categoryRepo, name, ownerID, input.Type, uuid.Nil); err != nil {
		return nil, err
	}

	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}

	category := entity.NewCategory(name, color, ownerID, input.Type, input.ParentID)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category:    category,
		Editability: ClassifyEditable(uc.scheme, category),
	}, nil
}
