package valueobject

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kakeibo/backend/internal/domain/entity"
)

func TestCategoryScheme_IsProtectedParent(t *testing.T) {
	scheme := DefaultHierarchicalScheme()
	parentID := uuid.New()

	tests := []struct {
		name     string
		category *entity.Category
		expected bool
	}{
		{
			name:     "reserved expense root",
			category: &entity.Category{Name: "固定費", Type: entity.CategoryTypeExpense},
			expected: true,
		},
		{
			name:     "reserved name with a parent",
			category: &entity.Category{Name: "固定費", Type: entity.CategoryTypeExpense, ParentID: &parentID},
			expected: false,
		},
		{
			name:     "expense name under income type",
			category: &entity.Category{Name: "固定費", Type: entity.CategoryTypeIncome},
			expected: false,
		},
		{
			name:     "reserved income root",
			category: &entity.Category{Name: "貯金", Type: entity.CategoryTypeIncome},
			expected: true,
		},
		{
			name:     "ordinary root",
			category: &entity.Category{Name: "食費", Type: entity.CategoryTypeExpense},
			expected: false,
		},
		{
			name:     "nil category",
			category: nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scheme.IsProtectedParent(tt.category))
		})
	}
}

func TestCategoryScheme_Flat(t *testing.T) {
	scheme := FlatScheme()

	assert.False(t, scheme.IsHierarchical())
	assert.Empty(t, scheme.RequiredParents(entity.CategoryTypeExpense))
	assert.False(t, scheme.IsProtectedParent(&entity.Category{Name: "固定費", Type: entity.CategoryTypeExpense}))
}

func TestCategoryScheme_RequiredParentsReturnsCopy(t *testing.T) {
	scheme := DefaultHierarchicalScheme()

	names := scheme.RequiredParents(entity.CategoryTypeExpense)
	names[0] = "changed"

	assert.Equal(t, []string{"固定費", "変動費", "投資"}, scheme.RequiredParents(entity.CategoryTypeExpense))
	assert.Equal(t, []string{"給料", "貯金"}, scheme.RequiredParents(entity.CategoryTypeIncome))
}

func TestParseCategoryScheme(t *testing.T) {
	tests := []struct {
		input   string
		kind    SchemeKind
		wantErr bool
	}{
		{input: "flat", kind: SchemeFlat},
		{input: "Hierarchical", kind: SchemeHierarchical},
		{input: "", kind: SchemeHierarchical},
		{input: "tree", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			scheme, err := ParseCategoryScheme(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, scheme.Kind())
		})
	}
}
