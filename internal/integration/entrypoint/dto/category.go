package dto

import (
	"time"

	"github.com/kakeibo/backend/internal/application/usecase/category"
	"github.com/kakeibo/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required"`
	Color    string  `json:"color,omitempty"`
	Type     string  `json:"type" binding:"required"`
	ParentID *string `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Color    *string `json:"color,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// EnsureParentsRequest optionally restricts parent creation to one type.
type EnsureParentsRequest struct {
	Type string `json:"type,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Color     string             `json:"color"`
	Type      string             `json:"type"`
	ParentID  *string            `json:"parent_id"`
	Protected bool               `json:"protected"`
	CanEdit   bool               `json:"can_edit"`
	CanDelete bool               `json:"can_delete"`
	Reason    string             `json:"reason,omitempty"`
	Children  []CategoryResponse `json:"children,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// EnsureParentsResponse lists the parents created by an ensure-parents call.
type EnsureParentsResponse struct {
	Created []CategoryResponse `json:"created"`
}

// ToCategoryResponse converts a domain Category and its editability to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category, editability category.Editability) CategoryResponse {
	var parentID *string
	if cat.ParentID != nil {
		id := cat.ParentID.String()
		parentID = &id
	}

	return CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		Color:     cat.Color,
		Type:      string(cat.Type),
		ParentID:  parentID,
		Protected: editability.Protected,
		CanEdit:   editability.CanEdit,
		CanDelete: editability.CanDelete,
		Reason:    editability.Reason,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// ToCategoryOutputResponse converts a CategoryOutput, including any nested children.
func ToCategoryOutputResponse(output *category.CategoryOutput) CategoryResponse {
	resp := ToCategoryResponse(output.Category, output.Editability)
	for _, child := range output.Children {
		resp.Children = append(resp.Children, ToCategoryOutputResponse(child))
	}
	return resp
}

// ToCategoryListResponse converts a list of CategoryOutput to CategoryListResponse.
func ToCategoryListResponse(outputs []*category.CategoryOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(outputs))
	for i, output := range outputs {
		categories[i] = ToCategoryOutputResponse(output)
	}
	return CategoryListResponse{
		Categories: categories,
	}
}

// ToEnsureParentsResponse converts the parents created by an ensure-parents call.
func ToEnsureParentsResponse(created []*entity.Category, classify func(*entity.Category) category.Editability) EnsureParentsResponse {
	resp := EnsureParentsResponse{Created: make([]CategoryResponse, len(created))}
	for i, cat := range created {
		resp.Created[i] = ToCategoryResponse(cat, classify(cat))
	}
	return resp
}
