// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// MaxCategoryNameLength is the maximum allowed length for category names, in characters.
const MaxCategoryNameLength = 50

var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// normalizeName trims the name and checks it is present and short enough.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

func validateColor(color string) error {
	if color != "" && !hexColorRegex.MatchString(color) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return nil
}

func validateType(categoryType entity.CategoryType) error {
	if !categoryType.IsValid() {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}
	return nil
}

// parentRequiredError names the parents a category of the given type may sit under.
func parentRequiredError(scheme valueobject.CategoryScheme, categoryType entity.CategoryType) error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeParentRequired,
		fmt.Sprintf("%s categories must be placed under one of: %s",
			categoryType, strings.Join(scheme.RequiredParents(categoryType), ", ")),
		domainerror.ErrParentRequired,
	)
}

func invalidParentError(message string) error {
	return domainerror.NewCategoryError(domainerror.ErrCodeInvalidParent, message, domainerror.ErrInvalidParent)
}

// resolveParent applies the scheme's parent rules to a category being created or moved.
// selfID is uuid.Nil on create.
func resolveParent(
	ctx context.Context,
	repo adapter.CategoryRepository,
	scheme valueobject.CategoryScheme,
	ownerID uuid.UUID,
	categoryType entity.CategoryType,
	parentID *uuid.UUID,
	selfID uuid.UUID,
) error {
	if !scheme.IsHierarchical() {
		if parentID != nil {
			return invalidParentError("categories cannot have a parent in the flat scheme")
		}
		return nil
	}

	if parentID == nil {
		return parentRequiredError(scheme, categoryType)
	}
	if *parentID == selfID {
		return invalidParentError("a category cannot be its own parent")
	}

	parent, err := repo.FindByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return invalidParentError("parent category not found")
		}
		return fmt.Errorf("failed to find parent category: %w", err)
	}
	if !parent.IsOwnedBy(ownerID) {
		return invalidParentError("parent category not found")
	}
	if !scheme.IsProtectedParent(parent) {
		return invalidParentError("parent must be one of the top-level categories")
	}
	if parent.Type != categoryType {
		return invalidParentError("parent category must have the same type")
	}
	return nil
}

func ensureUniqueName(
	ctx context.Context,
	repo adapter.CategoryRepository,
	name string,
	ownerID uuid.UUID,
	categoryType entity.CategoryType,
	excludeID uuid.UUID,
) error {
	exists, err := repo.ExistsByNameAndOwner(ctx, name, ownerID, categoryType, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}
	return nil
}

// loadOwned fetches a category and checks it belongs to the session user.
func loadOwned(ctx context.Context, repo adapter.CategoryRepository, id uuid.UUID, session entity.Session, action string) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if !category.IsOwnedBy(session.UserID) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeNotAuthorizedCategory,
			fmt.Sprintf("not authorized to %s this category", action),
			domainerror.ErrNotAuthorizedToModifyCategory,
		)
	}
	return category, nil
}
