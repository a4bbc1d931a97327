package category

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	Session      entity.Session
	CategoryType *entity.CategoryType
}

// CategoryOutput is a category annotated for display.
type CategoryOutput struct {
	*entity.Category
	Editability Editability
	Children    []*CategoryOutput
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	// Categories is the flat list: expense before income, then by name.
	Categories []*CategoryOutput
	// Tree holds the roots with their children nested, in the same order.
	Tree []*CategoryOutput
}

// ListCategoriesUseCase handles listing categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	scheme       valueobject.CategoryScheme
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository, scheme valueobject.CategoryScheme) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
		scheme:       scheme,
	}
}

// Execute lists the user's categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByOwner(ctx, input.Session.UserID, input.CategoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	SortCategories(categories)

	outputs := make([]*CategoryOutput, len(categories))
	byID := make(map[uuid.UUID]*CategoryOutput, len(categories))
	for i, c := range categories {
		outputs[i] = &CategoryOutput{
			Category:    c,
			Editability: ClassifyEditable(uc.scheme, c),
		}
		byID[c.ID] = outputs[i]
	}

	tree := make([]*CategoryOutput, 0)
	for _, o := range outputs {
		if o.ParentID != nil {
			if parent, ok := byID[*o.ParentID]; ok {
				parent.Children = append(parent.Children, o)
				continue
			}
		}
		tree = append(tree, o)
	}

	return &ListCategoriesOutput{
		Categories: outputs,
		Tree:       tree,
	}, nil
}

// SortCategories orders categories expense before income, then by name.
func SortCategories(categories []*entity.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Type != categories[j].Type {
			return categories[i].Type == entity.CategoryTypeExpense
		}
		return categories[i].Name < categories[j].Name
	})
}
