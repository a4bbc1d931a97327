package entry

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
)

var errStorage = errors.New("storage unavailable")

type fakeEntryRepository struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entity.Entry

	createCalls int
	updateCalls int
	deleteCalls int
	lastFilter  adapter.EntryFilter
}

func newFakeEntryRepository(entries ...*entity.Entry) *fakeEntryRepository {
	repo := &fakeEntryRepository{entries: make(map[uuid.UUID]*entity.Entry)}
	for _, e := range entries {
		repo.entries[e.ID] = e
	}
	return repo
}

func (r *fakeEntryRepository) Create(_ context.Context, entry *entity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeEntryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, domainerror.ErrEntryNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEntryRepository) FindByFilter(_ context.Context, filter adapter.EntryFilter) ([]*entity.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
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
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].HappenedOn.After(result[j].HappenedOn)
	})
	return result, nil
}

func (r *fakeEntryRepository) Update(_ context.Context, entry *entity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeEntryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	delete(r.entries, id)
	return nil
}

// fakeCategoryRepository only serves lookups by ID.
type fakeCategoryRepository struct {
	adapter.CategoryRepository
	categories map[uuid.UUID]*entity.Category
	err        error
}

func newFakeCategoryRepository(categories ...*entity.Category) *fakeCategoryRepository {
	repo := &fakeCategoryRepository{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.LedgerEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event entity.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
