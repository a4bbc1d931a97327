package entry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
)

// DeleteEntryInput represents the input for entry deletion.
type DeleteEntryInput struct {
	Session entity.Session
	EntryID uuid.UUID
}

// DeleteEntryOutput represents the output of entry deletion.
type DeleteEntryOutput struct {
	Success bool
}

// DeleteEntryUseCase handles entry deletion logic.
type DeleteEntryUseCase struct {
	entryRepo adapter.EntryRepository
	publisher adapter.EventPublisher
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(entryRepo adapter.EntryRepository, publisher adapter.EventPublisher) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		entryRepo: entryRepo,
		publisher: publisher,
	}
}

// Execute performs the entry deletion.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) (*DeleteEntryOutput, error) {
	entry, err := loadOwned(ctx, uc.entryRepo, input.EntryID, input.Session, "delete")
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Delete(ctx, entry.ID); err != nil {
		return nil, fmt.Errorf("failed to delete entry: %w", err)
	}

	publish(ctx, uc.publisher, entity.NewLedgerEvent(entity.LedgerEventEntryDeleted, entry.UserID, entry.ID, entry.Month()))

	return &DeleteEntryOutput{Success: true}, nil
}
