package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// EntryModel represents the entries table in the database.
// HappenedOn is stored as YYYY-MM-DD text so range filters compare lexicographically on every driver.
type EntryModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_entries_user_date"`
	Type       string     `gorm:"type:varchar(10);not null"`
	Amount     int64      `gorm:"not null"`
	HappenedOn string     `gorm:"type:varchar(10);not null;index:idx_entries_user_date"`
	Note       string     `gorm:"type:varchar(500)"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time  `gorm:"not null"`
	UpdatedAt  time.Time  `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the EntryModel.
func (EntryModel) TableName() string {
	return "entries"
}

// ToEntity converts an EntryModel to a domain Entry entity.
// A malformed stored date yields the zero time.
func (m *EntryModel) ToEntity() *entity.Entry {
	happenedOn, _ := entity.ParseDate(m.HappenedOn)

	e := &entity.Entry{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       entity.CategoryType(m.Type),
		Amount:     m.Amount,
		HappenedOn: happenedOn,
		Note:       m.Note,
		CategoryID: m.CategoryID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Category != nil {
		e.Category = m.Category.ToEntity()
	}
	return e
}

// EntryFromEntity creates an EntryModel from a domain Entry entity.
// The category association is never written through the entry.
func EntryFromEntity(e *entity.Entry) *EntryModel {
	return &EntryModel{
		ID:         e.ID,
		UserID:     e.UserID,
		Type:       string(e.Type),
		Amount:     e.Amount,
		HappenedOn: e.Date(),
		Note:       e.Note,
		CategoryID: e.CategoryID,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
