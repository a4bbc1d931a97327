package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/usecase/category"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/domain/valueobject"
	"github.com/kakeibo/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category-related HTTP requests.
type CategoryController struct {
	listUseCase             *category.ListCategoriesUseCase
	createUseCase           *category.CreateCategoryUseCase
	updateUseCase           *category.UpdateCategoryUseCase
	deleteUseCase           *category.DeleteCategoryUseCase
	ensureParentsUseCase    *category.EnsureParentsUseCase
	ensureAllParentsUseCase *category.EnsureAllParentsUseCase
	scheme                  valueobject.CategoryScheme
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
	ensureParentsUseCase *category.EnsureParentsUseCase,
	ensureAllParentsUseCase *category.EnsureAllParentsUseCase,
	scheme valueobject.CategoryScheme,
) *CategoryController {
	return &CategoryController{
		listUseCase:             listUseCase,
		createUseCase:           createUseCase,
		updateUseCase:           updateUseCase,
		deleteUseCase:           deleteUseCase,
		ensureParentsUseCase:    ensureParentsUseCase,
		ensureAllParentsUseCase: ensureAllParentsUseCase,
		scheme:                  scheme,
	}
}

// List handles GET /categories requests.
// ?type= filters by category type, ?view=tree nests children under their parents.
func (c *CategoryController) List(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	categoryType, ok := parseOptionalType(ctx.Query("type"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Category type must be 'expense' or 'income'",
			Code:  string(domainerror.ErrCodeInvalidCategoryType),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		Session:      session,
		CategoryType: categoryType,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	if ctx.Query("view") == "tree" {
		ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Tree))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingCategoryFields),
			Details: err.Error(),
		})
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid parent category ID format",
			Code:  string(domainerror.ErrCodeInvalidParent),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Session:  session,
		Name:     req.Name,
		Color:    req.Color,
		Type:     entity.CategoryType(req.Type),
		ParentID: parentID,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category, output.Editability))
}

// EnsureParents handles POST /categories/ensure-parents requests.
// Without a type in the body the parents of every type are ensured.
func (c *CategoryController) EnsureParents(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.EnsureParentsRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body",
				Code:  string(domainerror.ErrCodeMissingCategoryFields),
			})
			return
		}
	}

	categoryType, ok := parseOptionalType(req.Type)
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Category type must be 'expense' or 'income'",
			Code:  string(domainerror.ErrCodeInvalidCategoryType),
		})
		return
	}

	var created []*entity.Category
	if categoryType != nil {
		output, err := c.ensureParentsUseCase.Execute(ctx.Request.Context(), category.EnsureParentsInput{
			Session: session,
			Type:    *categoryType,
		})
		if err != nil {
			c.handleCategoryError(ctx, err)
			return
		}
		created = output.Created
	} else {
		output, err := c.ensureAllParentsUseCase.Execute(ctx.Request.Context(), session)
		if err != nil {
			c.handleCategoryError(ctx, err)
			return
		}
		created = output.Created
	}

	ctx.JSON(http.StatusOK, dto.ToEnsureParentsResponse(created, func(cat *entity.Category) category.Editability {
		return category.ClassifyEditable(c.scheme, cat)
	}))
}

// Update handles PATCH /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeCategoryNotFound),
		})
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	parentID, err := parseOptionalUUID(req.ParentID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid parent category ID format",
			Code:  string(domainerror.ErrCodeInvalidParent),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		Session:    session,
		CategoryID: categoryID,
		Name:       req.Name,
		Color:      req.Color,
		ParentID:   parentID,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category, output.Editability))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	categoryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeCategoryNotFound),
		})
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		Session:    session,
		CategoryID: categoryID,
	}); err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(getStatusCodeForCategoryError(catErr.Code), dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidColorFormat,
		domainerror.ErrCodeCategoryNameRequired,
		domainerror.ErrCodeInvalidCategoryType,
		domainerror.ErrCodeMissingCategoryFields,
		domainerror.ErrCodeParentRequired,
		domainerror.ErrCodeInvalidParent:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedCategory:
		return http.StatusForbidden
	case domainerror.ErrCodeProtectedCategory,
		domainerror.ErrCodeCategoryHasChildren:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
