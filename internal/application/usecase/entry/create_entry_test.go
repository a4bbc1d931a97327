package entry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

func requireEntryCode(t *testing.T, err error, code domainerror.EntryErrorCode) {
	t.Helper()
	require.Error(t, err)
	var entryErr *domainerror.EntryError
	require.True(t, errors.As(err, &entryErr), "expected EntryError, got %v", err)
	assert.Equal(t, code, entryErr.Code)
}

func TestCreateEntryUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	session := entity.NewSession(uuid.New(), "user@example.com")
	food := entity.NewCategory("食費", entity.DefaultCategoryColor, session.UserID, entity.CategoryTypeExpense, nil)
	salary := entity.NewCategory("給料", entity.DefaultCategoryColor, session.UserID, entity.CategoryTypeIncome, nil)
	foreign := entity.NewCategory("食費", entity.DefaultCategoryColor, uuid.New(), entity.CategoryTypeExpense, nil)

	validInput := func() CreateEntryInput {
		return CreateEntryInput{
			Session:    session,
			Type:       entity.CategoryTypeExpense,
			Amount:     1200,
			HappenedOn: "2024-03-05",
			Note:       "lunch",
			CategoryID: idPtr(food.ID),
		}
	}

	t.Run("creates an entry and publishes its month", func(t *testing.T) {
		entries := newFakeEntryRepository()
		publisher := &recordingPublisher{}
		uc := NewCreateEntryUseCase(entries, newFakeCategoryRepository(food), publisher)

		output, err := uc.Execute(ctx, validInput())

		require.NoError(t, err)
		assert.Equal(t, int64(1200), output.Entry.Amount)
		assert.Equal(t, "2024-03-05", output.Entry.Date())
		assert.Equal(t, "食費", output.Entry.CategoryName())
		assert.Equal(t, 1, entries.createCalls)
		require.Len(t, publisher.events, 1)
		assert.Equal(t, entity.LedgerEventEntryCreated, publisher.events[0].Kind)
		assert.Equal(t, []string{"2024-03"}, publisher.events[0].Months)
	})

	t.Run("uncategorized entry", func(t *testing.T) {
		input := validInput()
		input.CategoryID = nil
		uc := NewCreateEntryUseCase(newFakeEntryRepository(), newFakeCategoryRepository(), &recordingPublisher{})

		output, err := uc.Execute(ctx, input)

		require.NoError(t, err)
		assert.Nil(t, output.Entry.CategoryID)
		assert.Equal(t, entity.UncategorizedName, output.Entry.CategoryName())
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		entries := newFakeEntryRepository()
		uc := NewCreateEntryUseCase(entries, newFakeCategoryRepository(food), &recordingPublisher{err: errStorage})

		_, err := uc.Execute(ctx, validInput())

		require.NoError(t, err)
		assert.Equal(t, 1, entries.createCalls)
	})

	tests := []struct {
		name   string
		mutate func(*CreateEntryInput)
		code   domainerror.EntryErrorCode
	}{
		{name: "zero amount", mutate: func(in *CreateEntryInput) { in.Amount = 0 }, code: domainerror.ErrCodeInvalidAmount},
		{name: "negative amount", mutate: func(in *CreateEntryInput) { in.Amount = -5 }, code: domainerror.ErrCodeInvalidAmount},
		{name: "amount above cap", mutate: func(in *CreateEntryInput) { in.Amount = valueobject.MaxAmount + 1 }, code: domainerror.ErrCodeInvalidAmount},
		{name: "unknown type", mutate: func(in *CreateEntryInput) { in.Type = "transfer" }, code: domainerror.ErrCodeInvalidEntryType},
		{name: "bad date", mutate: func(in *CreateEntryInput) { in.HappenedOn = "2024-02-30" }, code: domainerror.ErrCodeInvalidEntryDate},
		{name: "note too long", mutate: func(in *CreateEntryInput) { in.Note = strings.Repeat("あ", MaxNoteLength+1) }, code: domainerror.ErrCodeNoteTooLong},
		{name: "missing category", mutate: func(in *CreateEntryInput) { in.CategoryID = idPtr(uuid.New()) }, code: domainerror.ErrCodeEntryCategoryNotFound},
		{name: "another user's category", mutate: func(in *CreateEntryInput) { in.CategoryID = idPtr(foreign.ID) }, code: domainerror.ErrCodeEntryCategoryNotFound},
		{name: "category of the other type", mutate: func(in *CreateEntryInput) { in.CategoryID = idPtr(salary.ID) }, code: domainerror.ErrCodeCategoryTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := newFakeEntryRepository()
			publisher := &recordingPublisher{}
			uc := NewCreateEntryUseCase(entries, newFakeCategoryRepository(food, salary, foreign), publisher)
			input := validInput()
			tt.mutate(&input)

			output, err := uc.Execute(ctx, input)

			assert.Nil(t, output)
			requireEntryCode(t, err, tt.code)
			assert.Zero(t, entries.createCalls)
			assert.Empty(t, publisher.events)
		})
	}

	t.Run("note at the limit is accepted", func(t *testing.T) {
		input := validInput()
		input.Note = strings.Repeat("あ", MaxNoteLength)
		uc := NewCreateEntryUseCase(newFakeEntryRepository(), newFakeCategoryRepository(food), &recordingPublisher{})

		_, err := uc.Execute(ctx, input)

		require.NoError(t, err)
	})

	t.Run("category lookup failure is wrapped", func(t *testing.T) {
		categories := newFakeCategoryRepository(food)
		categories.err = errStorage
		uc := NewCreateEntryUseCase(newFakeEntryRepository(), categories, &recordingPublisher{})

		_, err := uc.Execute(ctx, validInput())

		require.Error(t, err)
		assert.ErrorIs(t, err, errStorage)
	})
}
