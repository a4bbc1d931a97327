package category

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
)

var errStorage = errors.New("storage unavailable")

// fakeCategoryRepository is an in-memory CategoryRepository that counts calls.
type fakeCategoryRepository struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category

	findRootsErr error
	createErr    error

	findByIDCalls  int
	createCalls    int
	batchCalls     int
	updateCalls    int
	deleteCalls    int
	countChildCall int
}

func newFakeCategoryRepository(categories ...*entity.Category) *fakeCategoryRepository {
	repo := &fakeCategoryRepository{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) CreateBatch(_ context.Context, categories []*entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batchCalls++
	if r.createErr != nil {
		return r.createErr
	}
	for _, c := range categories {
		r.categories[c.ID] = c
	}
	return nil
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByIDCalls++
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepository) FindByOwner(_ context.Context, ownerID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Category
	for _, c := range r.categories {
		if c.OwnerID != ownerID {
			continue
		}
		if categoryType != nil && c.Type != *categoryType {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeCategoryRepository) FindRootsByOwnerAndType(_ context.Context, ownerID uuid.UUID, categoryType entity.CategoryType) ([]*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findRootsErr != nil {
		return nil, r.findRootsErr
	}
	var result []*entity.Category
	for _, c := range r.categories {
		if c.OwnerID == ownerID && c.Type == categoryType && c.ParentID == nil {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCategoryRepository) ExistsByNameAndOwner(_ context.Context, name string, ownerID uuid.UUID, categoryType entity.CategoryType, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID != excludeID && c.Name == name && c.OwnerID == ownerID && c.Type == categoryType {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepository) CountChildren(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countChildCall++
	var count int64
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			count++
		}
	}
	return count, nil
}

func (r *fakeCategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepository) mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createCalls + r.batchCalls + r.updateCalls + r.deleteCalls
}

func (r *fakeCategoryRepository) rootNames(ownerID uuid.UUID, categoryType entity.CategoryType) []string {
	roots, _ := r.FindRootsByOwnerAndType(context.Background(), ownerID, categoryType)
	names := make([]string, 0, len(roots))
	for _, c := range roots {
		names = append(names, c.Name)
	}
	return names
}

// recordingPublisher captures published events.
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

func newParent(ownerID uuid.UUID, name string, categoryType entity.CategoryType) *entity.Category {
	return entity.NewCategory(name, entity.DefaultCategoryColor, ownerID, categoryType, nil)
}

func newChild(ownerID uuid.UUID, name string, parent *entity.Category) *entity.Category {
	parentID := parent.ID
	return entity.NewCategory(name, entity.DefaultCategoryColor, ownerID, parent.Type, &parentID)
}
