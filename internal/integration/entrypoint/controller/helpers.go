package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/integration/entrypoint/dto"
	"github.com/kakeibo/backend/internal/integration/entrypoint/middleware"
)

// requireSession returns the authenticated session or writes a 401 response.
func requireSession(ctx *gin.Context) (entity.Session, bool) {
	session, ok := middleware.GetSessionFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return entity.Session{}, false
	}
	return session, true
}

// parseOptionalType parses a category type query or body value; empty means no filter.
func parseOptionalType(value string) (*entity.CategoryType, bool) {
	if value == "" {
		return nil, true
	}
	t := entity.CategoryType(value)
	if !t.IsValid() {
		return nil, false
	}
	return &t, true
}

// parseOptionalUUID parses an optional identifier; nil or empty yields nil.
func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// internalError logs err and writes a generic 500 response.
func internalError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
	slog.Error("Request failed with internal error",
		"method", ctx.Request.Method,
		"path", ctx.Request.URL.Path,
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
