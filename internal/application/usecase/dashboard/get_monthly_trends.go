package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

const (
	// DefaultTrendMonths is the trend window when none is requested.
	DefaultTrendMonths = 6
	// MaxTrendMonths bounds the trend window.
	MaxTrendMonths = 24
)

// GetMonthlyTrendsInput represents the input for month-over-month totals.
type GetMonthlyTrendsInput struct {
	Session entity.Session
	// Month is the last month of the window. Empty selects the current month.
	Month string
	// Months is the window length. Zero selects DefaultTrendMonths.
	Months int
}

// TrendPoint holds the totals of one month of the window.
type TrendPoint struct {
	Period valueobject.MonthPeriod
	MonthlyTotals
}

// GetMonthlyTrendsOutput lists the window oldest month first.
type GetMonthlyTrendsOutput struct {
	Points []TrendPoint
}

// GetMonthlyTrendsUseCase computes monthly totals over a trailing window of months.
type GetMonthlyTrendsUseCase struct {
	entryRepo adapter.EntryRepository
	now       func() time.Time
}

// NewGetMonthlyTrendsUseCase creates a new GetMonthlyTrendsUseCase instance.
func NewGetMonthlyTrendsUseCase(entryRepo adapter.EntryRepository) *GetMonthlyTrendsUseCase {
	return &GetMonthlyTrendsUseCase{
		entryRepo: entryRepo,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to resolve the default month.
func (uc *GetMonthlyTrendsUseCase) WithClock(now func() time.Time) *GetMonthlyTrendsUseCase {
	uc.now = now
	return uc
}

// Execute returns one point per month, including months without entries.
func (uc *GetMonthlyTrendsUseCase) Execute(ctx context.Context, input GetMonthlyTrendsInput) (*GetMonthlyTrendsOutput, error) {
	last, err := resolvePeriod(input.Month, uc.now())
	if err != nil {
		return nil, err
	}

	months := input.Months
	if months == 0 {
		months = DefaultTrendMonths
	}
	if months < 1 || months > MaxTrendMonths {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidMonths,
			fmt.Sprintf("months must be between 1 and %d", MaxTrendMonths),
			domainerror.ErrInvalidMonths,
		)
	}

	first := last.Shift(-(months - 1))
	start, _ := first.Bounds()
	_, end := last.Bounds()

	entries, err := uc.entryRepo.FindByFilter(ctx, adapter.EntryFilter{
		UserID:    input.Session.UserID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for trends: %w", err)
	}

	points := make([]TrendPoint, months)
	index := make(map[string]int, months)
	for i := range points {
		points[i].Period = first.Shift(i)
		index[points[i].Period.String()] = i
	}

	for _, e := range entries {
		i, ok := index[e.Month()]
		if !ok {
			continue
		}
		switch e.Type {
		case entity.CategoryTypeIncome:
			points[i].Income += e.Amount
		case entity.CategoryTypeExpense:
			points[i].Expense += e.Amount
		}
	}
	for i := range points {
		points[i].Balance = points[i].Income - points[i].Expense
	}

	return &GetMonthlyTrendsOutput{Points: points}, nil
}
