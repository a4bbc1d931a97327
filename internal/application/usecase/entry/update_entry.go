package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
)

// UpdateEntryInput represents the input for entry update. Nil fields are left unchanged.
type UpdateEntryInput struct {
	Session    entity.Session
	EntryID    uuid.UUID
	Type       *entity.CategoryType
	Amount     *int64
	HappenedOn *string
	Note       *string
	CategoryID *uuid.UUID
	// ClearCategory detaches the entry from its category.
	ClearCategory bool
}

// UpdateEntryOutput represents the output of entry update.
type UpdateEntryOutput struct {
	Entry *entity.Entry
}

// UpdateEntryUseCase handles entry update logic.
type UpdateEntryUseCase struct {
	entryRepo    adapter.EntryRepository
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(
	entryRepo adapter.EntryRepository,
	categoryRepo adapter.CategoryRepository,
	publisher adapter.EventPublisher,
) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute applies the changes and re-validates the category against the resulting type.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	entry, err := loadOwned(ctx, uc.entryRepo, input.EntryID, input.Session, "update")
	if err != nil {
		return nil, err
	}
	previousMonth := entry.Month()

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		entry.Type = *input.Type
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		entry.Amount = *input.Amount
	}
	if input.HappenedOn != nil {
		happenedOn, err := parseHappenedOn(*input.HappenedOn)
		if err != nil {
			return nil, err
		}
		entry.HappenedOn = happenedOn
	}
	if input.Note != nil {
		if err := validateNote(*input.Note); err != nil {
			return nil, err
		}
		entry.Note = *input.Note
	}

	switch {
	case input.ClearCategory:
		entry.CategoryID = nil
		entry.Category = nil
	case input.CategoryID != nil:
		categoryID := *input.CategoryID
		entry.CategoryID = &categoryID
	}

	// A type change must still agree with the kept category.
	if entry.CategoryID != nil {
		category, err := resolveCategory(ctx, uc.categoryRepo, *entry.CategoryID, entry.UserID, entry.Type)
		if err != nil {
			return nil, err
		}
		entry.Category = category
	}

	entry.UpdatedAt = time.Now().UTC()
	if err := uc.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	months := []string{previousMonth}
	if entry.Month() != previousMonth {
		months = append(months, entry.Month())
	}
	publish(ctx, uc.publisher, entity.NewLedgerEvent(entity.LedgerEventEntryUpdated, entry.UserID, entry.ID, months...))

	return &UpdateEntryOutput{Entry: entry}, nil
}
