package category

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// EnsureParentsInput represents the input for reconciling the protected parents of one type.
type EnsureParentsInput struct {
	Session entity.Session
	Type    entity.CategoryType
}

// EnsureParentsOutput lists the parent categories created by the call.
type EnsureParentsOutput struct {
	Created []*entity.Category
}

// EnsureParentsUseCase creates whichever reserved parent categories a user is missing.
type EnsureParentsUseCase struct {
	categoryRepo adapter.CategoryRepository
	scheme       valueobject.CategoryScheme
}

// NewEnsureParentsUseCase creates a new EnsureParentsUseCase instance.
func NewEnsureParentsUseCase(categoryRepo adapter.CategoryRepository, scheme valueobject.CategoryScheme) *EnsureParentsUseCase {
	return &EnsureParentsUseCase{
		categoryRepo: categoryRepo,
		scheme:       scheme,
	}
}

// Execute reads the user's root categories of the type and inserts the missing reserved names.
// A failed read aborts before any insert.
func (uc *EnsureParentsUseCase) Execute(ctx context.Context, input EnsureParentsInput) (*EnsureParentsOutput, error) {
	if !input.Type.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	required := uc.scheme.RequiredParents(input.Type)
	if len(required) == 0 {
		return &EnsureParentsOutput{}, nil
	}

	roots, err := uc.categoryRepo.FindRootsByOwnerAndType(ctx, input.Session.UserID, input.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to read root categories: %w", err)
	}

	existing := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		existing[root.Name] = struct{}{}
	}

	var missing []*entity.Category
	for _, name := range required {
		if _, ok := existing[name]; ok {
			continue
		}
		missing = append(missing, entity.NewCategory(name, entity.DefaultCategoryColor, input.Session.UserID, input.Type, nil))
	}

	if len(missing) == 0 {
		return &EnsureParentsOutput{}, nil
	}

	if err := uc.categoryRepo.CreateBatch(ctx, missing); err != nil {
		return nil, fmt.Errorf("failed to create parent categories: %w", err)
	}

	return &EnsureParentsOutput{Created: missing}, nil
}

// EnsureAllParentsOutput lists the parents created across both types.
type EnsureAllParentsOutput struct {
	Created []*entity.Category
}

// EnsureAllParentsUseCase reconciles the protected parents of every category type.
type EnsureAllParentsUseCase struct {
	ensureParents *EnsureParentsUseCase
}

// NewEnsureAllParentsUseCase creates a new EnsureAllParentsUseCase instance.
func NewEnsureAllParentsUseCase(ensureParents *EnsureParentsUseCase) *EnsureAllParentsUseCase {
	return &EnsureAllParentsUseCase{ensureParents: ensureParents}
}

// Execute runs the per-type reconciliation for expense and income concurrently.
func (uc *EnsureAllParentsUseCase) Execute(ctx context.Context, session entity.Session) (*EnsureAllParentsOutput, error) {
	results := make([][]*entity.Category, len(entity.CategoryTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, categoryType := range entity.CategoryTypes {
		i, categoryType := i, categoryType
		g.Go(func() error {
			output, err := uc.ensureParents.Execute(gctx, EnsureParentsInput{Session: session, Type: categoryType})
			if err != nil {
				return err
			}
			results[i] = output.Created
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	created := make([]*entity.Category, 0)
	for _, r := range results {
		created = append(created, r...)
	}
	return &EnsureAllParentsOutput{Created: created}, nil
}

// InitializeSession implements adapter.SessionInitializer.
func (uc *EnsureAllParentsUseCase) InitializeSession(ctx context.Context, session entity.Session) error {
	_, err := uc.Execute(ctx, session)
	return err
}
