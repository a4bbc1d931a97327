package category

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

func requireCategoryCode(t *testing.T, err error, code domainerror.CategoryErrorCode) {
	t.Helper()
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
	assert.Equal(t, code, catErr.Code)
}

func TestCreateCategoryUseCase_Hierarchical(t *testing.T) {
	ctx := context.Background()
	scheme := valueobject.DefaultHierarchicalScheme()
	session := entity.NewSession(uuid.New(), "user@example.com")

	fixed := newParent(session.UserID, "固定費", entity.CategoryTypeExpense)
	salary := newParent(session.UserID, "給料", entity.CategoryTypeIncome)
	foreign := newParent(uuid.New(), "変動費", entity.CategoryTypeExpense)
	child := newChild(session.UserID, "家賃", fixed)

	ptr := func(id uuid.UUID) *uuid.UUID { return &id }

	tests := []struct {
		name     string
		input    CreateCategoryInput
		wantCode domainerror.CategoryErrorCode
	}{
		{
			name:     "blank name",
			input:    CreateCategoryInput{Name: "   ", Type: entity.CategoryTypeExpense, ParentID: ptr(fixed.ID)},
			wantCode: domainerror.ErrCodeCategoryNameRequired,
		},
		{
			name:     "name too long",
			input:    CreateCategoryInput{Name: strings.Repeat("食", MaxCategoryNameLength+1), Type: entity.CategoryTypeExpense, ParentID: ptr(fixed.ID)},
			wantCode: domainerror.ErrCodeCategoryNameTooLong,
		},
		{
			name:     "invalid color",
			input:    CreateCategoryInput{Name: "食費", Color: "red", Type: entity.CategoryTypeExpense, ParentID: ptr(fixed.ID)},
			wantCode: domainerror.ErrCodeInvalidColorFormat,
		},
		{
			name:     "invalid type",
			input:    CreateCategoryInput{Name: "食費", Type: "transfer", ParentID: ptr(fixed.ID)},
			wantCode: domainerror.ErrCodeInvalidCategoryType,
		},
		{
			name:     "missing parent",
			input:    CreateCategoryInput{Name: "食費", Type: entity.CategoryTypeExpense},
			wantCode: domainerror.ErrCodeParentRequired,
		},
		{
			name:     "unknown parent",
			input:    CreateCategoryInput{Name: "食費", Type: entity.CategoryTypeExpense, ParentID: ptr(uuid.New())},
			wantCode: domainerror.ErrCodeInvalidParent,
		},
		{
			name:     "parent of another user",
			input:    CreateCategoryInput{Name: "食費", Type: entity.CategoryTypeExpense, ParentID: ptr(foreign.ID)},
			wantCode: domainerror.ErrCodeInvalidParent,
		},
		{
			name:     "parent of another type",
			input:    CreateCategoryInput{Name: "食費", Type: entity.CategoryTypeExpense, ParentID: ptr(salary.ID)},
			wantCode: domainerror.ErrCodeInvalidParent,
		},
		{
			name:     "parent is not top-level",
			input:    CreateCategoryInput{Name: "食費", Type: entity.CategoryTypeExpense, ParentID: ptr(child.ID)},
			wantCode: domainerror.ErrCodeInvalidParent,
		},
		{
			name:     "duplicate name",
			input:    CreateCategoryInput{Name: "家賃", Type: entity.CategoryTypeExpense, ParentID: ptr(fixed.ID)},
			wantCode: domainerror.ErrCodeCategoryNameExists,
		},
		{
			name:     "reserved name as a child",
			input:    CreateCategoryInput{Name: "固定費", Type: entity.CategoryTypeExpense, ParentID: ptr(fixed.ID)},
			wantCode: domainerror.ErrCodeCategoryNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeCategoryRepository(fixed, salary, foreign, child)
			uc := NewCreateCategoryUseCase(repo, scheme)
			tt.input.Session = session

			output, err := uc.Execute(ctx, tt.input)

			assert.Nil(t, output)
			requireCategoryCode(t, err, tt.wantCode)
			assert.Zero(t, repo.createCalls)
		})
	}

	t.Run("creates a child under a protected parent", func(t *testing.T) {
		repo := newFakeCategoryRepository(fixed, salary)
		uc := NewCreateCategoryUseCase(repo, scheme)

		output, err := uc.Execute(ctx, CreateCategoryInput{
			Session:  session,
			Name:     "  光熱費 ",
			Type:     entity.CategoryTypeExpense,
			ParentID: ptr(fixed.ID),
		})

		require.NoError(t, err)
		assert.Equal(t, "光熱費", output.Category.Name)
		assert.Equal(t, entity.DefaultCategoryColor, output.Category.Color)
		require.NotNil(t, output.Category.ParentID)
		assert.Equal(t, fixed.ID, *output.Category.ParentID)
		assert.True(t, output.Editability.CanEdit)
		assert.Equal(t, 1, repo.createCalls)
	})

	t.Run("missing parent message names the allowed parents", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepository(), scheme)

		_, err := uc.Execute(ctx, CreateCategoryInput{Session: session, Name: "ボーナス", Type: entity.CategoryTypeIncome})

		require.ErrorIs(t, err, domainerror.ErrParentRequired)
		assert.Contains(t, err.Error(), "給料, 貯金")
	})
}

func TestCreateCategoryUseCase_Flat(t *testing.T) {
	ctx := context.Background()
	session := entity.NewSession(uuid.New(), "user@example.com")

	t.Run("creates a root category", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		uc := NewCreateCategoryUseCase(repo, valueobject.FlatScheme())

		output, err := uc.Execute(ctx, CreateCategoryInput{Session: session, Name: "食費", Color: "#FF0000", Type: entity.CategoryTypeExpense})

		require.NoError(t, err)
		assert.Nil(t, output.Category.ParentID)
		assert.Equal(t, "#FF0000", output.Category.Color)
	})

	t.Run("rejects a parent", func(t *testing.T) {
		parent := newParent(session.UserID, "生活", entity.CategoryTypeExpense)
		repo := newFakeCategoryRepository(parent)
		uc := NewCreateCategoryUseCase(repo, valueobject.FlatScheme())
		parentID := parent.ID

		_, err := uc.Execute(ctx, CreateCategoryInput{Session: session, Name: "食費", Type: entity.CategoryTypeExpense, ParentID: &parentID})

		requireCategoryCode(t, err, domainerror.ErrCodeInvalidParent)
	})

	t.Run("same name is allowed across types", func(t *testing.T) {
		repo := newFakeCategoryRepository(newParent(session.UserID, "その他", entity.CategoryTypeExpense))
		uc := NewCreateCategoryUseCase(repo, valueobject.FlatScheme())

		_, err := uc.Execute(ctx, CreateCategoryInput{Session: session, Name: "その他", Type: entity.CategoryTypeIncome})

		require.NoError(t, err)
	})
}
