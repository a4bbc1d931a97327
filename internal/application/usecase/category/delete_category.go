package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	Session    entity.Session
	CategoryID uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
// Entries of a deleted category are kept and fall into the uncategorized bucket.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
	scheme       valueobject.CategoryScheme
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	publisher adapter.EventPublisher,
	scheme valueobject.CategoryScheme,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		publisher:    publisher,
		scheme:       scheme,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := loadOwned(ctx, uc.categoryRepo, input.CategoryID, input.Session, "delete")
	if err != nil {
		return nil, err
	}

	if editability := ClassifyEditable(uc.scheme, category); !editability.CanDelete {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeProtectedCategory,
			editability.Reason,
			domainerror.ErrProtectedCategory,
		)
	}

	children, err := uc.categoryRepo.CountChildren(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count child categories: %w", err)
	}
	if children > 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryHasChildren,
			"delete or move the child categories first",
			domainerror.ErrCategoryHasChildren,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	event := entity.NewLedgerEvent(entity.LedgerEventCategoryDeleted, input.Session.UserID, category.ID)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish ledger event", "kind", event.Kind, "user_id", event.UserID, "error", err)
	}

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}
