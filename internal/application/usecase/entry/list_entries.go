package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// ListEntriesInput represents the input for listing entries of a month.
type ListEntriesInput struct {
	Session entity.Session
	// Month is YYYY-MM. Empty selects the current month.
	Month string
	Type  *entity.CategoryType
}

// ListEntriesOutput represents the output of listing entries.
type ListEntriesOutput struct {
	Period  valueobject.MonthPeriod
	Entries []*entity.Entry
}

// ListEntriesUseCase handles listing the entries of a month.
type ListEntriesUseCase struct {
	entryRepo adapter.EntryRepository
	now       func() time.Time
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(entryRepo adapter.EntryRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to resolve the default month.
func (uc *ListEntriesUseCase) WithClock(now func() time.Time) *ListEntriesUseCase {
	uc.now = now
	return uc
}

// Execute returns the entries of the month, newest date first.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	period := valueobject.CurrentMonthPeriod(uc.now())
	if input.Month != "" {
		parsed, err := valueobject.ParseMonthPeriod(input.Month)
		if err != nil {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeInvalidEntryMonth,
				"month must be in YYYY-MM format",
				domainerror.ErrInvalidPeriod,
			)
		}
		period = parsed
	}

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
	}

	start, end := period.Bounds()
	entries, err := uc.entryRepo.FindByFilter(ctx, adapter.EntryFilter{
		UserID:    input.Session.UserID,
		StartDate: start,
		EndDate:   end,
		Type:      input.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &ListEntriesOutput{
		Period:  period,
		Entries: entries,
	}, nil
}
