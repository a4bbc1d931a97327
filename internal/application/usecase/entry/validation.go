// Package entry contains use cases for income and expense entries.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// MaxNoteLength is the maximum allowed length for entry notes, in characters.
const MaxNoteLength = 500

func validateAmount(amount int64) error {
	if amount <= 0 || amount > valueobject.MaxAmount {
		return domainerror.NewEntryError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be a positive whole number up to 1000000000000",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}

func validateType(entryType entity.CategoryType) error {
	if !entryType.IsValid() {
		return domainerror.NewEntryError(
			domainerror.ErrCodeInvalidEntryType,
			"entry type must be 'expense' or 'income'",
			domainerror.ErrInvalidEntryType,
		)
	}
	return nil
}

func parseHappenedOn(value string) (time.Time, error) {
	date, err := entity.ParseDate(value)
	if err != nil {
		return time.Time{}, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidEntryDate,
			"happened_on must be a valid date in YYYY-MM-DD format",
			domainerror.ErrInvalidEntryDate,
		)
	}
	return date, nil
}

func validateNote(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return domainerror.NewEntryError(
			domainerror.ErrCodeNoteTooLong,
			fmt.Sprintf("note must not exceed %d characters", MaxNoteLength),
			domainerror.ErrNoteTooLong,
		)
	}
	return nil
}

// resolveCategory loads the category an entry points to and checks it can hold the entry.
func resolveCategory(
	ctx context.Context,
	repo adapter.CategoryRepository,
	categoryID uuid.UUID,
	userID uuid.UUID,
	entryType entity.CategoryType,
) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeEntryCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	// Another user's category is reported as missing.
	if !category.IsOwnedBy(userID) {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeEntryCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if category.Type != entryType {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeCategoryTypeMismatch,
			fmt.Sprintf("category %q holds %s entries", category.Name, category.Type),
			domainerror.ErrCategoryTypeMismatch,
		)
	}
	return category, nil
}

func loadOwned(ctx context.Context, repo adapter.EntryRepository, id uuid.UUID, session entity.Session, action string) (*entity.Entry, error) {
	entry, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrEntryNotFound) {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeEntryNotFound,
				"entry not found",
				domainerror.ErrEntryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}

	if entry.UserID != session.UserID {
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeNotAuthorizedEntry,
			fmt.Sprintf("not authorized to %s this entry", action),
			domainerror.ErrNotAuthorizedToModifyEntry,
		)
	}
	return entry, nil
}

// publish announces a ledger change. The mutation is already stored, so failures are only logged.
func publish(ctx context.Context, publisher adapter.EventPublisher, event entity.LedgerEvent) {
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish ledger event",
			"kind", event.Kind,
			"user_id", event.UserID,
			"error", err,
		)
	}
}
