package category

import (
	"github.com/kakeibo/backend/internal/domain/entity"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// Editability tells clients which actions a category accepts.
type Editability struct {
	Protected bool
	CanEdit   bool
	CanDelete bool
	Reason    string
}

const protectedReason = "top-level categories cannot be edited or deleted"

// ClassifyEditable decides whether edit and delete are permitted for the category.
func ClassifyEditable(scheme valueobject.CategoryScheme, category *entity.Category) Editability {
	if scheme.IsProtectedParent(category) {
		return Editability{Protected: true, Reason: protectedReason}
	}
	return Editability{CanEdit: true, CanDelete: true}
}
