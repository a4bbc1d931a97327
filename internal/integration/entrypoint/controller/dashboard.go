package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/application/usecase/dashboard"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
	"github.com/kakeibo/backend/internal/integration/entrypoint/dto"
)

// DefaultStreamHeartbeat is the interval of keep-alive events on the summary stream.
const DefaultStreamHeartbeat = 25 * time.Second

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getMonthlySummaryUseCase    *dashboard.GetMonthlySummaryUseCase
	watchMonthlySummaryUseCase  *dashboard.WatchMonthlySummaryUseCase
	getCategoryEntriesUseCase   *dashboard.GetCategoryEntriesUseCase
	exportMonthlySummaryUseCase *dashboard.ExportMonthlySummaryUseCase
	getMonthlyTrendsUseCase     *dashboard.GetMonthlyTrendsUseCase
	heartbeat                   time.Duration
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getMonthlySummaryUseCase *dashboard.GetMonthlySummaryUseCase,
	watchMonthlySummaryUseCase *dashboard.WatchMonthlySummaryUseCase,
	getCategoryEntriesUseCase *dashboard.GetCategoryEntriesUseCase,
	exportMonthlySummaryUseCase *dashboard.ExportMonthlySummaryUseCase,
	getMonthlyTrendsUseCase *dashboard.GetMonthlyTrendsUseCase,
) *DashboardController {
	return &DashboardController{
		getMonthlySummaryUseCase:    getMonthlySummaryUseCase,
		watchMonthlySummaryUseCase:  watchMonthlySummaryUseCase,
		getCategoryEntriesUseCase:   getCategoryEntriesUseCase,
		exportMonthlySummaryUseCase: exportMonthlySummaryUseCase,
		getMonthlyTrendsUseCase:     getMonthlyTrendsUseCase,
		heartbeat:                   DefaultStreamHeartbeat,
	}
}

// Summary handles GET /dashboard/summary?month=YYYY-MM requests.
func (c *DashboardController) Summary(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.getMonthlySummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetMonthlySummaryInput{
		Session: session,
		Month:   ctx.Query("month"),
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(output.Report))
}

// Stream handles GET /dashboard/summary/stream requests as Server-Sent Events.
// A "summary" event carries the current report and is repeated after every change.
func (c *DashboardController) Stream(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	reports, err := c.watchMonthlySummaryUseCase.Execute(ctx.Request.Context(), dashboard.WatchMonthlySummaryInput{
		Session: session,
		Month:   ctx.Query("month"),
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case report, ok := <-reports:
			if !ok {
				return false
			}
			ctx.SSEvent("summary", dto.ToMonthlySummaryResponse(report))
			return true
		case <-ticker.C:
			ctx.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

// CategoryEntries handles GET /dashboard/categories/entries requests.
// The bucket is selected by ?category_id= or ?uncategorized=true, optionally narrowed by ?type=.
func (c *DashboardController) CategoryEntries(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	input := dashboard.GetCategoryEntriesInput{
		Session:       session,
		Month:         ctx.Query("month"),
		Uncategorized: ctx.Query("uncategorized") == "true",
	}

	if raw := ctx.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid category ID format",
				Code:  string(domainerror.ErrCodeInvalidBucket),
			})
			return
		}
		input.CategoryID = &categoryID
	}

	entryType, ok := parseOptionalType(ctx.Query("type"))
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Type must be 'expense' or 'income'",
			Code:  string(domainerror.ErrCodeInvalidBucket),
		})
		return
	}
	input.Type = entryType

	output, err := c.getCategoryEntriesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryEntriesResponse(output))
}

// Export handles GET /dashboard/export?month=YYYY-MM requests.
func (c *DashboardController) Export(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	output, err := c.exportMonthlySummaryUseCase.Execute(ctx.Request.Context(), dashboard.ExportMonthlySummaryInput{
		Session: session,
		Month:   ctx.Query("month"),
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.FileName))
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// Trends handles GET /dashboard/trends?month=YYYY-MM&months=N requests.
func (c *DashboardController) Trends(ctx *gin.Context) {
	session, ok := requireSession(ctx)
	if !ok {
		return
	}

	input := dashboard.GetMonthlyTrendsInput{
		Session: session,
		Month:   ctx.Query("month"),
	}

	if raw := ctx.Query("months"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: domainerror.ErrInvalidMonths.Error(),
				Code:  string(domainerror.ErrCodeInvalidMonths),
			})
			return
		}
		input.Months = months
	}

	output, err := c.getMonthlyTrendsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyTrendsResponse(output))
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	internalError(ctx, err)
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidBucket,
		domainerror.ErrCodeInvalidMonths:
		return http.StatusBadRequest
	case domainerror.ErrCodeBucketNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
