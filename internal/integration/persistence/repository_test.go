package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func day(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	entries := NewEntryRepository(db)
	ownerID := uuid.New()

	fixed := entity.NewCategory("固定費", entity.DefaultCategoryColor, ownerID, entity.CategoryTypeExpense, nil)
	invest := entity.NewCategory("投資", entity.DefaultCategoryColor, ownerID, entity.CategoryTypeExpense, nil)
	salary := entity.NewCategory("給料", entity.DefaultCategoryColor, ownerID, entity.CategoryTypeIncome, nil)
	require.NoError(t, repo.CreateBatch(ctx, []*entity.Category{fixed, invest, salary}))

	rentParent := fixed.ID
	rent := entity.NewCategory("家賃", "#FF0000", ownerID, entity.CategoryTypeExpense, &rentParent)
	require.NoError(t, repo.Create(ctx, rent))

	t.Run("find by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, "家賃", found.Name)
		require.NotNil(t, found.ParentID)
		assert.Equal(t, fixed.ID, *found.ParentID)

		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	})

	t.Run("roots by type", func(t *testing.T) {
		roots, err := repo.FindRootsByOwnerAndType(ctx, ownerID, entity.CategoryTypeExpense)
		require.NoError(t, err)
		names := []string{}
		for _, c := range roots {
			names = append(names, c.Name)
		}
		assert.ElementsMatch(t, []string{"固定費", "投資"}, names)
	})

	t.Run("find by owner with and without type", func(t *testing.T) {
		all, err := repo.FindByOwner(ctx, ownerID, nil)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		income := entity.CategoryTypeIncome
		incomes, err := repo.FindByOwner(ctx, ownerID, &income)
		require.NoError(t, err)
		require.Len(t, incomes, 1)
		assert.Equal(t, salary.ID, incomes[0].ID)

		others, err := repo.FindByOwner(ctx, uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, others)
	})

	t.Run("name uniqueness is scoped by type and excludes self", func(t *testing.T) {
		exists, err := repo.ExistsByNameAndOwner(ctx, "家賃", ownerID, entity.CategoryTypeExpense, uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByNameAndOwner(ctx, "家賃", ownerID, entity.CategoryTypeExpense, rent.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsByNameAndOwner(ctx, "家賃", ownerID, entity.CategoryTypeIncome, uuid.Nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("count children", func(t *testing.T) {
		count, err := repo.CountChildren(ctx, fixed.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("update", func(t *testing.T) {
		rent.Name = "住居費"
		rent.Color = "#00FF00"
		require.NoError(t, repo.Update(ctx, rent))

		found, err := repo.FindByID(ctx, rent.ID)
		require.NoError(t, err)
		assert.Equal(t, "住居費", found.Name)
		assert.Equal(t, "#00FF00", found.Color)
	})

	t.Run("delete detaches entries", func(t *testing.T) {
		rentID := rent.ID
		entry := entity.NewEntry(ownerID, entity.CategoryTypeExpense, 80000, day(5, 25), "", &rentID)
		require.NoError(t, entries.Create(ctx, entry))

		require.NoError(t, repo.Delete(ctx, rent.ID))

		_, err := repo.FindByID(ctx, rent.ID)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

		detached, err := entries.FindByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Nil(t, detached.CategoryID)
		assert.Equal(t, entity.UncategorizedName, detached.CategoryName())

		assert.ErrorIs(t, repo.Delete(ctx, rent.ID), domainerror.ErrCategoryNotFound)
	})
}

func TestCategoryRepository_NameUniqueness(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	newRoot := func(name string, categoryType entity.CategoryType) *entity.Category {
		return entity.NewCategory(name, entity.DefaultCategoryColor, ownerID, categoryType, nil)
	}
	expenseRoots := func(t *testing.T, repo adapter.CategoryRepository) []string {
		t.Helper()
		roots, err := repo.FindRootsByOwnerAndType(ctx, ownerID, entity.CategoryTypeExpense)
		require.NoError(t, err)
		names := make([]string, 0, len(roots))
		for _, c := range roots {
			names = append(names, c.Name)
		}
		return names
	}

	t.Run("duplicate create is rejected", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		require.NoError(t, repo.Create(ctx, newRoot("固定費", entity.CategoryTypeExpense)))

		err := repo.Create(ctx, newRoot("固定費", entity.CategoryTypeExpense))

		var catErr *domainerror.CategoryError
		require.ErrorAs(t, err, &catErr)
		assert.Equal(t, domainerror.ErrCodeCategoryNameExists, catErr.Code)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists)
		assert.Equal(t, []string{"固定費"}, expenseRoots(t, repo))
	})

	t.Run("same name under another type or owner is allowed", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		require.NoError(t, repo.Create(ctx, newRoot("固定費", entity.CategoryTypeExpense)))
		require.NoError(t, repo.Create(ctx, newRoot("固定費", entity.CategoryTypeIncome)))
		other := entity.NewCategory("固定費", entity.DefaultCategoryColor, uuid.New(), entity.CategoryTypeExpense, nil)
		require.NoError(t, repo.Create(ctx, other))
	})

	t.Run("rename onto an existing name is rejected", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		fixed := newRoot("固定費", entity.CategoryTypeExpense)
		invest := newRoot("投資", entity.CategoryTypeExpense)
		require.NoError(t, repo.CreateBatch(ctx, []*entity.Category{fixed, invest}))

		invest.Name = "固定費"
		err := repo.Update(ctx, invest)

		assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists)
		assert.ElementsMatch(t, []string{"固定費", "投資"}, expenseRoots(t, repo))
	})

	t.Run("overlapping parent batches keep one row per name", func(t *testing.T) {
		repo := NewCategoryRepository(newTestDB(t))
		batch := func() []*entity.Category {
			return []*entity.Category{
				newRoot("固定費", entity.CategoryTypeExpense),
				newRoot("変動費", entity.CategoryTypeExpense),
				newRoot("投資", entity.CategoryTypeExpense),
			}
		}
		// Both callers read an empty root list before either inserts.
		first, second := batch(), batch()
		require.NoError(t, repo.CreateBatch(ctx, first))
		require.NoError(t, repo.CreateBatch(ctx, second))

		assert.ElementsMatch(t, []string{"固定費", "変動費", "投資"}, expenseRoots(t, repo))
		for _, c := range second {
			_, err := repo.FindByID(ctx, c.ID)
			assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
		}
	})
}

func TestEntryRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewCategoryRepository(db)
	repo := NewEntryRepository(db)
	userID := uuid.New()

	food := entity.NewCategory("食費", entity.DefaultCategoryColor, userID, entity.CategoryTypeExpense, nil)
	require.NoError(t, categories.Create(ctx, food))
	foodID := food.ID

	lastOfApril := entity.NewEntry(userID, entity.CategoryTypeExpense, 100, day(4, 30), "", &foodID)
	firstOfMay := entity.NewEntry(userID, entity.CategoryTypeExpense, 200, day(5, 1), "朝", &foodID)
	lastOfMay := entity.NewEntry(userID, entity.CategoryTypeIncome, 300, day(5, 31), "", nil)
	june := entity.NewEntry(userID, entity.CategoryTypeExpense, 400, day(6, 1), "", nil)
	stranger := entity.NewEntry(uuid.New(), entity.CategoryTypeExpense, 500, day(5, 10), "", nil)
	for _, e := range []*entity.Entry{lastOfApril, firstOfMay, lastOfMay, june, stranger} {
		require.NoError(t, repo.Create(ctx, e))
	}

	may := adapter.EntryFilter{UserID: userID, StartDate: day(5, 1), EndDate: day(5, 31)}

	t.Run("inclusive month bounds, newest first", func(t *testing.T) {
		found, err := repo.FindByFilter(ctx, may)
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, lastOfMay.ID, found[0].ID)
		assert.Equal(t, firstOfMay.ID, found[1].ID)
		assert.Equal(t, "食費", found[1].CategoryName())
		assert.Equal(t, "2024-05-01", found[1].Date())
		assert.Equal(t, "朝", found[1].Note)
	})

	t.Run("category and uncategorized filters", func(t *testing.T) {
		byCategory := may
		byCategory.CategoryID = &foodID
		found, err := repo.FindByFilter(ctx, byCategory)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, firstOfMay.ID, found[0].ID)

		loose := may
		loose.Uncategorized = true
		found, err = repo.FindByFilter(ctx, loose)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, lastOfMay.ID, found[0].ID)
	})

	t.Run("type filter", func(t *testing.T) {
		income := entity.CategoryTypeIncome
		byType := may
		byType.Type = &income
		found, err := repo.FindByFilter(ctx, byType)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, lastOfMay.ID, found[0].ID)
	})

	t.Run("update moves the entry", func(t *testing.T) {
		june.HappenedOn = day(5, 15)
		june.Amount = 450
		require.NoError(t, repo.Update(ctx, june))

		found, err := repo.FindByID(ctx, june.ID)
		require.NoError(t, err)
		assert.Equal(t, "2024-05-15", found.Date())
		assert.Equal(t, int64(450), found.Amount)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, lastOfApril.ID))
		_, err := repo.FindByID(ctx, lastOfApril.ID)
		assert.ErrorIs(t, err, domainerror.ErrEntryNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, lastOfApril.ID), domainerror.ErrEntryNotFound)
	})
}

func TestUserAndTokenRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)

	user := entity.NewUser("hanako@example.com", "Hanako", "hash")
	require.NoError(t, users.Create(ctx, user))

	exists, err := users.ExistsByEmail(ctx, "hanako@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := users.FindByEmail(ctx, "hanako@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = users.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)

	require.NoError(t, tokens.SaveRefreshToken(ctx, "live", user.ID, time.Now().Add(time.Hour)))
	require.NoError(t, tokens.SaveRefreshToken(ctx, "stale", user.ID, time.Now().Add(-time.Hour)))

	valid, err := tokens.IsRefreshTokenValid(ctx, "live")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = tokens.IsRefreshTokenValid(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, tokens.InvalidateRefreshToken(ctx, "live"))
	valid, err = tokens.IsRefreshTokenValid(ctx, "live")
	require.NoError(t, err)
	assert.False(t, valid)

	removed, err := tokens.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
