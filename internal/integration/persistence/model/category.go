// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_owner_type_name"`
	Color     string     `gorm:"type:varchar(7);default:'#6366F1'"`
	Type      string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_categories_owner_type_name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_categories_owner_type_name"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		Type:      entity.CategoryType(m.Type),
		ParentID:  m.ParentID,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Type:      string(category.Type),
		ParentID:  category.ParentID,
		OwnerID:   category.OwnerID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
