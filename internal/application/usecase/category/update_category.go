package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// UpdateCategoryInput represents the input for category update.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Session    entity.Session
	CategoryID uuid.UUID
	Name       *string
	Color      *string
	ParentID   *uuid.UUID
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category    *entity.Category
	Editability Editability
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	scheme       valueobject.CategoryScheme
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository, scheme valueobject.CategoryScheme) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
		scheme:       scheme,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := loadOwned(ctx, uc.categoryRepo, input.CategoryID, input.Session, "update")
	if err != nil {
		return nil, err
	}

	if editability := ClassifyEditable(uc.scheme, category); !editability.CanEdit {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeProtectedCategory,
			editability.Reason,
			domainerror.ErrProtectedCategory,
		)
	}

	if input.Name != nil {
		name, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != category.Name {
			if err := ensureUniqueName(ctx, uc.categoryRepo, name, category.OwnerID, category.Type, category.ID); err != nil {
				return nil, err
			}
			category.Name = name
		}
	}

	if input.Color != nil {
		if err := validateColor(*input.Color); err != nil {
			return nil, err
		}
		if *input.Color != "" {
			category.Color = *input.Color
		}
	}

	if input.ParentID != nil {
		if err := resolveParent(ctx, uc.categoryRepo, uc.scheme, category.OwnerID, category.Type, input.ParentID, category.ID); err != nil {
			return nil, err
		}
		parentID := *input.ParentID
		category.ParentID = &parentID
	}

	category.UpdatedAt = time.Now().UTC()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category:    category,
		Editability: ClassifyEditable(uc.scheme, category),
	}, nil
}
