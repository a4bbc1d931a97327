package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
)

// WatchMonthlySummaryInput represents the input for a live monthly summary.
type WatchMonthlySummaryInput struct {
	Session entity.Session
	Month   string
}

// WatchMonthlySummaryUseCase recomputes a month's report whenever the user's ledger changes.
type WatchMonthlySummaryUseCase struct {
	entryRepo  adapter.EntryRepository
	subscriber adapter.EventSubscriber
	now        func() time.Time
}

// NewWatchMonthlySummaryUseCase creates a new WatchMonthlySummaryUseCase instance.
func NewWatchMonthlySummaryUseCase(entryRepo adapter.EntryRepository, subscriber adapter.EventSubscriber) *WatchMonthlySummaryUseCase {
	return &WatchMonthlySummaryUseCase{
		entryRepo:  entryRepo,
		subscriber: subscriber,
		now:        time.Now,
	}
}

// WithClock replaces the clock used to resolve the default month.
func (uc *WatchMonthlySummaryUseCase) WithClock(now func() time.Time) *WatchMonthlySummaryUseCase {
	uc.now = now
	return uc
}

// Execute returns a channel that first yields the current report, then a fresh report
// after every ledger event affecting the month. The channel closes when ctx is done.
func (uc *WatchMonthlySummaryUseCase) Execute(ctx context.Context, input WatchMonthlySummaryInput) (<-chan *MonthlyReport, error) {
	period, err := resolvePeriod(input.Month, uc.now())
	if err != nil {
		return nil, err
	}

	watchCtx, cancel := context.WithCancel(ctx)

	// Subscribe before the first read so no change slips between the two.
	events, err := uc.subscriber.Subscribe(watchCtx, input.Session.UserID)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe to ledger events: %w", err)
	}

	entries, err := loadMonth(watchCtx, uc.entryRepo, input.Session.UserID, period)
	if err != nil {
		cancel()
		return nil, err
	}

	reports := make(chan *MonthlyReport, 1)
	reports <- Summarize(entries, period)

	go func() {
		defer close(reports)
		defer cancel()

		logger := slog.Default().With("component", "dashboard_watch", "user_id", input.Session.UserID)
		month := period.String()

		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				if !event.Affects(month) {
					continue
				}

				entries, err := loadMonth(watchCtx, uc.entryRepo, input.Session.UserID, period)
				if err != nil {
					logger.Warn("Failed to recompute monthly summary", "month", month, "error", err)
					continue
				}

				select {
				case reports <- Summarize(entries, period):
				case <-watchCtx.Done():
					return
				}
			}
		}
	}()

	return reports, nil
}
