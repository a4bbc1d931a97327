package dashboard

import (
	"context"
	"time"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
)

// GetMonthlySummaryInput represents the input for the monthly summary.
type GetMonthlySummaryInput struct {
	Session entity.Session
	// Month is YYYY-MM. Empty selects the current month.
	Month string
}

// GetMonthlySummaryOutput represents the output of the monthly summary.
type GetMonthlySummaryOutput struct {
	Report *MonthlyReport
}

// GetMonthlySummaryUseCase computes the aggregates of one month.
type GetMonthlySummaryUseCase struct {
	entryRepo adapter.EntryRepository
	now       func() time.Time
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(entryRepo adapter.EntryRepository) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to resolve the default month.
func (uc *GetMonthlySummaryUseCase) WithClock(now func() time.Time) *GetMonthlySummaryUseCase {
	uc.now = now
	return uc
}

// Execute loads the month and summarizes it.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	period, err := resolvePeriod(input.Month, uc.now())
	if err != nil {
		return nil, err
	}

	entries, err := loadMonth(ctx, uc.entryRepo, input.Session.UserID, period)
	if err != nil {
		return nil, err
	}

	return &GetMonthlySummaryOutput{Report: Summarize(entries, period)}, nil
}
