package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/integration/persistence/model"
)

// entryRepository implements the adapter.EntryRepository interface.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository instance.
func NewEntryRepository(db *gorm.DB) adapter.EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// Create creates a new entry in the database.
func (r *entryRepository) Create(ctx context.Context, e *entity.Entry) error {
	return r.db.WithContext(ctx).Omit("Category").Create(model.EntryFromEntity(e)).Error
}

// FindByID retrieves an entry by its ID with its category loaded.
func (r *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	var entryModel model.EntryModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&entryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEntryNotFound
		}
		return nil, result.Error
	}
	return entryModel.ToEntity(), nil
}

// FindByFilter retrieves entries matching the filter, newest date first.
func (r *entryRepository) FindByFilter(ctx context.Context, filter adapter.EntryFilter) ([]*entity.Entry, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", filter.UserID)

	if !filter.StartDate.IsZero() {
		query = query.Where("happened_on >= ?", filter.StartDate.Format(entity.DateLayout))
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("happened_on <= ?", filter.EndDate.Format(entity.DateLayout))
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	switch {
	case filter.Uncategorized:
		query = query.Where("category_id IS NULL")
	case filter.CategoryID != nil:
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var entryModels []model.EntryModel
	if err := query.Order("happened_on DESC, created_at DESC").Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]*entity.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToEntity()
	}
	return entries, nil
}

// Update updates an existing entry in the database.
func (r *entryRepository) Update(ctx context.Context, e *entity.Entry) error {
	result := r.db.WithContext(ctx).Omit("Category").Save(model.EntryFromEntity(e))
	return result.Error
}

// Delete removes an entry from the database.
func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.EntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrEntryNotFound
	}
	return nil
}
