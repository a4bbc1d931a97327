package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
)

func TestGetCategoryEntriesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	session := entity.NewSession(uuid.New(), "user@example.com")
	food := entity.NewCategory("食費", entity.DefaultCategoryColor, session.UserID, entity.CategoryTypeExpense, nil)
	foreign := entity.NewCategory("食費", entity.DefaultCategoryColor, uuid.New(), entity.CategoryTypeExpense, nil)

	lunch := newEntry(session.UserID, entity.CategoryTypeExpense, 900, date(2024, 5, 2), food)
	dinner := newEntry(session.UserID, entity.CategoryTypeExpense, 2100, date(2024, 5, 20), food)
	loose := newEntry(session.UserID, entity.CategoryTypeExpense, 300, date(2024, 5, 5), nil)
	gift := newEntry(session.UserID, entity.CategoryTypeIncome, 10000, date(2024, 5, 6), nil)

	entries := &fakeEntryRepository{}
	entries.add(lunch, dinner, loose, gift)
	categories := &fakeCategoryRepository{categories: map[uuid.UUID]*entity.Category{food.ID: food, foreign.ID: foreign}}

	t.Run("category bucket", func(t *testing.T) {
		uc := NewGetCategoryEntriesUseCase(entries, categories)

		output, err := uc.Execute(ctx, GetCategoryEntriesInput{Session: session, Month: "2024-05", CategoryID: &food.ID})

		require.NoError(t, err)
		assert.Equal(t, "食費", output.Name)
		assert.Equal(t, int64(3000), output.Total)
		require.Len(t, output.Entries, 2)
		assert.Equal(t, dinner.ID, output.Entries[0].ID)
	})

	t.Run("uncategorized bucket narrowed by type", func(t *testing.T) {
		uc := NewGetCategoryEntriesUseCase(entries, categories)
		expense := entity.CategoryTypeExpense

		output, err := uc.Execute(ctx, GetCategoryEntriesInput{Session: session, Month: "2024-05", Uncategorized: true, Type: &expense})

		require.NoError(t, err)
		assert.Equal(t, entity.UncategorizedName, output.Name)
		require.Len(t, output.Entries, 1)
		assert.Equal(t, loose.ID, output.Entries[0].ID)
		assert.Equal(t, int64(300), output.Total)
	})

	t.Run("another user's category", func(t *testing.T) {
		uc := NewGetCategoryEntriesUseCase(entries, categories)

		_, err := uc.Execute(ctx, GetCategoryEntriesInput{Session: session, Month: "2024-05", CategoryID: &foreign.ID})

		requireDashboardCode(t, err, domainerror.ErrCodeBucketNotFound)
	})

	t.Run("no bucket selected", func(t *testing.T) {
		uc := NewGetCategoryEntriesUseCase(entries, categories)

		_, err := uc.Execute(ctx, GetCategoryEntriesInput{Session: session, Month: "2024-05"})

		requireDashboardCode(t, err, domainerror.ErrCodeInvalidBucket)
	})
}
