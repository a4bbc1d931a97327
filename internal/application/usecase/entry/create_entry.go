package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
)

// CreateEntryInput represents the input for entry creation.
type CreateEntryInput struct {
	Session    entity.Session
	Type       entity.CategoryType
	Amount     int64
	HappenedOn string
	Note       string
	CategoryID *uuid.UUID
}

// CreateEntryOutput represents the output of entry creation.
type CreateEntryOutput struct {
	Entry *entity.Entry
}

// CreateEntryUseCase handles entry creation logic.
type CreateEntryUseCase struct {
	entryRepo    adapter.EntryRepository
	categoryRepo adapter.CategoryRepository
	publisher    adapter.EventPublisher
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(
	entryRepo adapter.EntryRepository,
	categoryRepo adapter.CategoryRepository,
	publisher adapter.EventPublisher,
) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		entryRepo:    entryRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Execute validates and stores a new entry.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	happenedOn, err := parseHappenedOn(input.HappenedOn)
	if err != nil {
		return nil, err
	}
	if err := validateNote(input.Note); err != nil {
		return nil, err
	}

	var category *entity.Category
	if input.CategoryID != nil {
		category, err = resolveCategory(ctx, uc.categoryRepo, *input.CategoryID, input.Session.UserID, input.Type)
		if err != nil {
			return nil, err
		}
	}

	entry := entity.NewEntry(input.Session.UserID, input.Type, input.Amount, happenedOn, input.Note, input.CategoryID)
	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	entry.Category = category

	publish(ctx, uc.publisher, entity.NewLedgerEvent(entity.LedgerEventEntryCreated, entry.UserID, entry.ID, entry.Month()))

	return &CreateEntryOutput{Entry: entry}, nil
}
