// Package valueobject contains domain value objects for the ledger.
package valueobject

import (
	"fmt"
	"strings"

	"github.com/kakeibo/backend/internal/domain/entity"
)

// SchemeKind names a category scheme variant.
type SchemeKind string

const (
	// SchemeFlat allows any category at the root and protects nothing.
	SchemeFlat SchemeKind = "flat"
	// SchemeHierarchical keeps a fixed set of protected parents per type and
	// requires every other category to sit under one of them.
	SchemeHierarchical SchemeKind = "hierarchical"
)

// Reserved parent names of the default hierarchical scheme.
var (
	DefaultExpenseParents = []string{"固定費", "変動費", "投資"}
	DefaultIncomeParents  = []string{"給料", "貯金"}
)

// CategoryScheme describes how categories are organized for a deployment.
type CategoryScheme struct {
	kind            SchemeKind
	requiredParents map[entity.CategoryType][]string
}

// FlatScheme returns the scheme without protected parents.
func FlatScheme() CategoryScheme {
	return CategoryScheme{kind: SchemeFlat}
}

// HierarchicalScheme returns a scheme with the given required parent names per type.
func HierarchicalScheme(required map[entity.CategoryType][]string) CategoryScheme {
	parents := make(map[entity.CategoryType][]string, len(required))
	for t, names := range required {
		parents[t] = append([]string(nil), names...)
	}
	return CategoryScheme{kind: SchemeHierarchical, requiredParents: parents}
}

// DefaultHierarchicalScheme returns the hierarchical scheme with the standard parents.
func DefaultHierarchicalScheme() CategoryScheme {
	return HierarchicalScheme(map[entity.CategoryType][]string{
		entity.CategoryTypeExpense: DefaultExpenseParents,
		entity.CategoryTypeIncome:  DefaultIncomeParents,
	})
}

// ParseCategoryScheme resolves a configured scheme name.
func ParseCategoryScheme(name string) (CategoryScheme, error) {
	switch SchemeKind(strings.ToLower(strings.TrimSpace(name))) {
	case SchemeFlat:
		return FlatScheme(), nil
	case SchemeHierarchical, "":
		return DefaultHierarchicalScheme(), nil
	default:
		return CategoryScheme{}, fmt.Errorf("unknown category scheme %q", name)
	}
}

// Kind returns the scheme variant.
func (s CategoryScheme) Kind() SchemeKind {
	return s.kind
}

// IsHierarchical reports whether categories must sit under protected parents.
func (s CategoryScheme) IsHierarchical() bool {
	return s.kind == SchemeHierarchical
}

// RequiredParents returns a copy of the reserved parent names for the type.
func (s CategoryScheme) RequiredParents(categoryType entity.CategoryType) []string {
	if !s.IsHierarchical() {
		return nil
	}
	return append([]string(nil), s.requiredParents[categoryType]...)
}

// IsReservedName reports whether name is a reserved parent name for the type.
func (s CategoryScheme) IsReservedName(categoryType entity.CategoryType, name string) bool {
	if !s.IsHierarchical() {
		return false
	}
	for _, reserved := range s.requiredParents[categoryType] {
		if reserved == name {
			return true
		}
	}
	return false
}

// IsProtectedParent reports whether the category is a root carrying a reserved name of its type.
func (s CategoryScheme) IsProtectedParent(category *entity.Category) bool {
	if category == nil {
		return false
	}
	return category.IsRoot() && s.IsReservedName(category.Type, category.Name)
}
