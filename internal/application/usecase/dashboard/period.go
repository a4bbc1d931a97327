package dashboard

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

// resolvePeriod parses a YYYY-MM month, defaulting to the month containing now.
func resolvePeriod(month string, now time.Time) (valueobject.MonthPeriod, error) {
	if month == "" {
		return valueobject.CurrentMonthPeriod(now), nil
	}
	period, err := valueobject.ParseMonthPeriod(month)
	if err != nil {
		return valueobject.MonthPeriod{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidPeriod,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidPeriod,
		)
	}
	return period, nil
}

// loadMonth reads every entry of the user within the period bounds.
func loadMonth(
	ctx context.Context,
	repo adapter.EntryRepository,
	userID uuid.UUID,
	period valueobject.MonthPeriod,
) ([]*entity.Entry, error) {
	start, end := period.Bounds()
	entries, err := repo.FindByFilter(ctx, adapter.EntryFilter{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for %s: %w", period, err)
	}
	return entries, nil
}
