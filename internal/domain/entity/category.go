// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// CategoryTypes lists every category type in display order.
var CategoryTypes = []CategoryType{CategoryTypeExpense, CategoryTypeIncome}

// IsValid reports whether t is a known category type.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// UncategorizedName is the bucket name used for entries without a category.
const UncategorizedName = "未分類"

// Category represents a ledger category owned by a user.
// Root categories have no parent; child categories reference a root of the same type.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Type      CategoryType
	ParentID  *uuid.UUID
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
// Defaulting of the color happens in the use case before calling this constructor.
func NewCategory(name, color string, ownerID uuid.UUID, categoryType CategoryType, parentID *uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Type:      categoryType,
		ParentID:  parentID,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsRoot reports whether the category sits at the top of the hierarchy.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsOwnedBy reports whether the category belongs to the given user.
func (c *Category) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}
