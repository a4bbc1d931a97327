package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// GetCategoryEntriesInput selects one category bucket of a month.
// Exactly one of CategoryID and Uncategorized identifies the bucket.
type GetCategoryEntriesInput struct {
	Session       entity.Session
	Month         string
	CategoryID    *uuid.UUID
	Uncategorized bool
	// Type narrows the uncategorized bucket, which can hold both types.
	Type *entity.CategoryType
}

// GetCategoryEntriesOutput lists the entries behind a category total.
type GetCategoryEntriesOutput struct {
	Period  valueobject.MonthPeriod
	Name    string
	Total   int64
	Entries []*entity.Entry
}

// GetCategoryEntriesUseCase drills down from a category total to its entries.
type GetCategoryEntriesUseCase struct {
	entryRepo    adapter.EntryRepository
	categoryRepo adapter.CategoryRepository
	now          func() time.Time
}

// NewGetCategoryEntriesUseCase creates a new GetCategoryEntriesUseCase instance.
func NewGetCategoryEntriesUseCase(
	entryRepo adapter.EntryRepository,
	categoryRepo adapter.CategoryRepository,
) *GetCategoryEntriesUseCase {
	return &GetCategoryEntriesUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to resolve the default month.
func (uc *GetCategoryEntriesUseCase) WithClock(now func() time.Time) *GetCategoryEntriesUseCase {
	uc.now = now
	return uc
}

// Execute returns the bucket's entries, newest date first, and their sum.
func (uc *GetCategoryEntriesUseCase) Execute(ctx context.Context, input GetCategoryEntriesInput) (*GetCategoryEntriesOutput, error) {
	period, err := resolvePeriod(input.Month, uc.now())
	if err != nil {
		return nil, err
	}

	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidBucket,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidBucket,
		)
	}

	start, end := period.Bounds()
	filter := adapter.EntryFilter{
		UserID:    input.Session.UserID,
		StartDate: start,
		EndDate:   end,
		Type:      input.Type,
	}
	name := entity.UncategorizedName

	switch {
	case input.Uncategorized:
		filter.Uncategorized = true
	case input.CategoryID != nil:
		category, err := uc.findBucketCategory(ctx, *input.CategoryID, input.Session)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &category.ID
		name = category.Name
	default:
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidBucket,
			"category_id or uncategorized=true is required",
			domainerror.ErrInvalidBucket,
		)
	}

	entries, err := uc.entryRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load category entries: %w", err)
	}

	var total int64
	for _, e := range entries {
		total += e.Amount
	}

	return &GetCategoryEntriesOutput{
		Period:  period,
		Name:    name,
		Total:   total,
		Entries: entries,
	}, nil
}

func (uc *GetCategoryEntriesUseCase) findBucketCategory(ctx context.Context, id uuid.UUID, session entity.Session) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || !category.IsOwnedBy(session.UserID) {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeBucketNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return category, nil
}
