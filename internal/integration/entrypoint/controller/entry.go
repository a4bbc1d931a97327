package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/usecase/entry"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/integration/entrypoint/dto"
)

// EntryController handles income and expense entry requests.
type EntryController struct {
	listUseCase   *entry.ListEntriesUseCase
	createUseCase *entry.CreateEntryUseCase
	updateUseCase *entry.UpdateEntryUseCase
	deleteUseCase *entry.DeleteEntryUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(
	listUseCase *entry.ListEntriesUseCase,
	createUseCase *entry.CreateEntryUseCase,
	updateUseCase *entry.UpdateEntryUseCase,
	deleteUseCase *entry.DeleteEntryUseCase,
) *EntryController {
	return &EntryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /entries?month=YYYY-MM requests.
func (c *EntryController) List(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	entryType, ok := parseOptionalType(ctx.Query("type"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Entry type must be 'expense' or 'income'",
			Code:  string(domainerror.ErrCodeInvalidEntryType),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), entry.ListEntriesInput{
		Session: session,
		Month:   ctx.Query("month"),
		Type:    entryType,
	})
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.EntryListResponse{
		Month:   output.Period.String(),
		Entries: dto.ToEntryResponses(output.Entries),
	})
}

// Create handles POST /entries requests.
func (c *EntryController) Create(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingEntryFields),
			Details: err.Error(),
		})
		return
	}

	amount, ok := dto.ParseAmount(req.Amount)
	if !ok {
		c.invalidAmount(ctx)
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		c.invalidCategoryID(ctx)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), entry.CreateEntryInput{
		Session:    session,
		Type:       entity.CategoryType(req.Type),
		Amount:     amount,
		HappenedOn: req.HappenedOn,
		Note:       req.Note,
		CategoryID: categoryID,
	})
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToEntryResponse(output.Entry))
}

// Update handles PATCH /entries/:id requests.
func (c *EntryController) Update(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
			Code:  string(domainerror.ErrCodeEntryNotFound),
		})
		return
	}

	var req dto.UpdateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingEntryFields),
		})
		return
	}

	input := entry.UpdateEntryInput{
		Session:    session,
		EntryID:    entryID,
		HappenedOn: req.HappenedOn,
		Note:       req.Note,
	}

	if req.Type != nil {
		entryType := entity.CategoryType(*req.Type)
		input.Type = &entryType
	}

	if req.Amount != nil {
		amount, ok := dto.ParseAmount(*req.Amount)
		if !ok {
			c.invalidAmount(ctx)
			return
		}
		input.Amount = &amount
	}

	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			input.ClearCategory = true
		} else {
			categoryID, err := parseOptionalUUID(req.CategoryID)
			if err != nil {
				c.invalidCategoryID(ctx)
				return
			}
			input.CategoryID = categoryID
		}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryResponse(output.Entry))
}

// Delete handles DELETE /entries/:id requests.
func (c *EntryController) Delete(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid entry ID format",
			Code:  string(domainerror.ErrCodeEntryNotFound),
		})
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), entry.DeleteEntryInput{
		Session: session,
		EntryID: entryID,
	}); err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *EntryController) invalidAmount(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: domainerror.ErrInvalidAmount.Error(),
		Code:  string(domainerror.ErrCodeInvalidAmount),
	})
}

func (c *EntryController) invalidCategoryID(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid category ID format",
		Code:  string(domainerror.ErrCodeEntryCategoryNotFound),
	})
}

// handleEntryError handles entry errors and returns appropriate HTTP responses.
func (c *EntryController) handleEntryError(ctx *gin.Context, err error) {
	var entryErr *domainerror.EntryError
	if errors.As(err, &entryErr) {
		ctx.JSON(getStatusCodeForEntryError(entryErr.Code), dto.ErrorResponse{
			Error: entryErr.Message,
			Code:  string(entryErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// getStatusCodeForEntryError maps entry error codes to HTTP status codes.
func getStatusCodeForEntryError(code domainerror.EntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeInvalidEntryType,
		domainerror.ErrCodeInvalidEntryDate,
		domainerror.ErrCodeNoteTooLong,
		domainerror.ErrCodeEntryCategoryNotFound,
		domainerror.ErrCodeCategoryTypeMismatch,
		domainerror.ErrCodeMissingEntryFields,
		domainerror.ErrCodeInvalidEntryMonth:
		return http.StatusBadRequest
	case domainerror.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedEntry:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
