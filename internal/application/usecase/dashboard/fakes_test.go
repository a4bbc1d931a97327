package dashboard

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
)

var errStorage = errors.New("storage unavailable")

// fakeEntryRepository answers FindByFilter from memory.
type fakeEntryRepository struct {
	adapter.EntryRepository

	mu      sync.Mutex
	entries []*entity.Entry
	err     error
	filters []adapter.EntryFilter
}

func (r *fakeEntryRepository) add(entries ...*entity.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entries...)
}

func (r *fakeEntryRepository) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filters)
}

func (r *fakeEntryRepository) FindByFilter(_ context.Context, filter adapter.EntryFilter) ([]*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, filter)
	if r.err != nil {
		return nil, r.err
	}
	var result []*entity.Entry
	for _, e := range r.entries {
		if e.UserID != filter.UserID {
			continue
		}
		if e.HappenedOn.Before(filter.StartDate) || e.HappenedOn.After(filter.EndDate) {
			continue
		}
		if filter.Type != nil && e.Type != *filter.Type {
			continue
		}
		if filter.Uncategorized && e.CategoryID != nil {
			continue
		}
		if !filter.Uncategorized && filter.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *filter.CategoryID) {
			continue
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].HappenedOn.After(result[j].HappenedOn)
	})
	return result, nil
}

type fakeCategoryRepository struct {
	adapter.CategoryRepository
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

// channelSubscriber hands out one channel per subscription and closes it with ctx.
type channelSubscriber struct {
	events chan entity.LedgerEvent
	err    error
}

func (s *channelSubscriber) Subscribe(ctx context.Context, _ uuid.UUID) (<-chan entity.LedgerEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(chan entity.LedgerEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-s.events:
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type fakeExporter struct {
	report *MonthlyReport
	err    error
}

func (e *fakeExporter) Export(_ context.Context, report *MonthlyReport) ([]byte, error) {
	e.report = report
	if e.err != nil {
		return nil, e.err
	}
	return []byte("workbook"), nil
}

func (e *fakeExporter) ContentType() string { return "application/octet-stream" }

func (e *fakeExporter) Extension() string { return ".bin" }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newEntry(userID uuid.UUID, entryType entity.CategoryType, amount int64, on time.Time, category *entity.Category) *entity.Entry {
	var categoryID *uuid.UUID
	if category != nil {
		id := category.ID
		categoryID = &id
	}
	e := entity.NewEntry(userID, entryType, amount, on, "", categoryID)
	e.Category = category
	return e
}
