package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kakeibo/backend/internal/domain/entity"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// CreateEntryRequest represents the request body for entry creation.
type CreateEntryRequest struct {
	Type       string          `json:"type" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	HappenedOn string          `json:"happened_on" binding:"required"`
	Note       string          `json:"note,omitempty"`
	CategoryID *string         `json:"category_id,omitempty"`
}

// UpdateEntryRequest represents the request body for entry update.
// An explicit empty category_id detaches the entry from its category.
type UpdateEntryRequest struct {
	Type       *string          `json:"type,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	HappenedOn *string          `json:"happened_on,omitempty"`
	Note       *string          `json:"note,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
}

// EntryResponse represents a single entry in API responses.
type EntryResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Amount       int64     `json:"amount"`
	HappenedOn   string    `json:"happened_on"`
	Note         string    `json:"note"`
	CategoryID   *string   `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EntryListResponse represents the response for listing entries of a month.
type EntryListResponse struct {
	Month   string          `json:"month"`
	Entries []EntryResponse `json:"entries"`
}

// ParseAmount converts a request amount to whole currency units.
func ParseAmount(value decimal.Decimal) (int64, bool) {
	return valueobject.AmountFromDecimal(value)
}

// ToEntryResponse converts a domain Entry entity to an EntryResponse DTO.
func ToEntryResponse(entry *entity.Entry) EntryResponse {
	var categoryID *string
	if entry.CategoryID != nil {
		id := entry.CategoryID.String()
		categoryID = &id
	}

	return EntryResponse{
		ID:           entry.ID.String(),
		Type:         string(entry.Type),
		Amount:       entry.Amount,
		HappenedOn:   entry.Date(),
		Note:         entry.Note,
		CategoryID:   categoryID,
		CategoryName: entry.CategoryName(),
		CreatedAt:    entry.CreatedAt,
		UpdatedAt:    entry.UpdatedAt,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []*entity.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		out[i] = ToEntryResponse(entry)
	}
	return out
}
