package entry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
)

func TestUpdateEntryUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	session := entity.NewSession(uuid.New(), "user@example.com")
	food := entity.NewCategory("食費", entity.DefaultCategoryColor, session.UserID, entity.CategoryTypeExpense, nil)
	rent := entity.NewCategory("家賃", entity.DefaultCategoryColor, session.UserID, entity.CategoryTypeExpense, nil)
	salary := entity.NewCategory("給料", entity.DefaultCategoryColor, session.UserID, entity.CategoryTypeIncome, nil)

	newExisting := func() *entity.Entry {
		return entity.NewEntry(session.UserID, entity.CategoryTypeExpense, 800,
			time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), "", idPtr(food.ID))
	}

	t.Run("moving an entry across months publishes both months", func(t *testing.T) {
		existing := newExisting()
		entries := newFakeEntryRepository(existing)
		publisher := &recordingPublisher{}
		uc := NewUpdateEntryUseCase(entries, newFakeCategoryRepository(food, rent), publisher)
		date := "2024-04-01"

		output, err := uc.Execute(ctx, UpdateEntryInput{Session: session, EntryID: existing.ID, HappenedOn: &date})

		require.NoError(t, err)
		assert.Equal(t, "2024-04", output.Entry.Month())
		require.Len(t, publisher.events, 1)
		assert.Equal(t, entity.LedgerEventEntryUpdated, publisher.events[0].Kind)
		assert.Equal(t, []string{"2024-03", "2024-04"}, publisher.events[0].Months)
	})

	t.Run("same month publishes once", func(t *testing.T) {
		existing := newExisting()
		publisher := &recordingPublisher{}
		uc := NewUpdateEntryUseCase(newFakeEntryRepository(existing), newFakeCategoryRepository(food, rent), publisher)
		amount := int64(950)

		output, err := uc.Execute(ctx, UpdateEntryInput{Session: session, EntryID: existing.ID, Amount: &amount, CategoryID: idPtr(rent.ID)})

		require.NoError(t, err)
		assert.Equal(t, int64(950), output.Entry.Amount)
		assert.Equal(t, "家賃", output.Entry.CategoryName())
		require.Len(t, publisher.events, 1)
		assert.Equal(t, []string{"2024-03"}, publisher.events[0].Months)
	})

	t.Run("clear category", func(t *testing.T) {
		existing := newExisting()
		uc := NewUpdateEntryUseCase(newFakeEntryRepository(existing), newFakeCategoryRepository(food), &recordingPublisher{})

		output, err := uc.Execute(ctx, UpdateEntryInput{Session: session, EntryID: existing.ID, ClearCategory: true})

		require.NoError(t, err)
		assert.Nil(t, output.Entry.CategoryID)
		assert.Equal(t, entity.UncategorizedName, output.Entry.CategoryName())
	})

	t.Run("type change must agree with the kept category", func(t *testing.T) {
		existing := newExisting()
		entries := newFakeEntryRepository(existing)
		uc := NewUpdateEntryUseCase(entries, newFakeCategoryRepository(food, salary), &recordingPublisher{})
		income := entity.CategoryTypeIncome

		_, err := uc.Execute(ctx, UpdateEntryInput{Session: session, EntryID: existing.ID, Type: &income})

		requireEntryCode(t, err, domainerror.ErrCodeCategoryTypeMismatch)
		assert.Zero(t, entries.updateCalls)
	})

	t.Run("type change with a matching category", func(t *testing.T) {
		existing := newExisting()
		uc := NewUpdateEntryUseCase(newFakeEntryRepository(existing), newFakeCategoryRepository(food, salary), &recordingPublisher{})
		income := entity.CategoryTypeIncome

		output, err := uc.Execute(ctx, UpdateEntryInput{Session: session, EntryID: existing.ID, Type: &income, CategoryID: idPtr(salary.ID)})

		require.NoError(t, err)
		assert.Equal(t, entity.CategoryTypeIncome, output.Entry.Type)
	})

	t.Run("entry not found", func(t *testing.T) {
		uc := NewUpdateEntryUseCase(newFakeEntryRepository(), newFakeCategoryRepository(), &recordingPublisher{})

		_, err := uc.Execute(ctx, UpdateEntryInput{Session: session, EntryID: uuid.New()})

		requireEntryCode(t, err, domainerror.ErrCodeEntryNotFound)
	})

	t.Run("another user's entry", func(t *testing.T) {
		existing := newExisting()
		entries := newFakeEntryRepository(existing)
		uc := NewUpdateEntryUseCase(entries, newFakeCategoryRepository(food), &recordingPublisher{})
		other := entity.NewSession(uuid.New(), "other@example.com")
		amount := int64(1)

		_, err := uc.Execute(ctx, UpdateEntryInput{Session: other, EntryID: existing.ID, Amount: &amount})

		requireEntryCode(t, err, domainerror.ErrCodeNotAuthorizedEntry)
		assert.Zero(t, entries.updateCalls)
	})

	t.Run("invalid amount", func(t *testing.T) {
		existing := newExisting()
		uc := NewUpdateEntryUseCase(newFakeEntryRepository(existing), newFakeCategoryRepository(food), &recordingPublisher{})
		amount := int64(0)

		_, err := uc.Execute(ctx, UpdateEntryInput{Session: session, EntryID: existing.ID, Amount: &amount})

		requireEntryCode(t, err, domainerror.ErrCodeInvalidAmount)
	})
}
