package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/kakeibo/backend/internal/application/adapter"
	"github.com/kakeibo/backend/internal/domain/entity"
	domainerror "github.com/kakeibo/backend/internal/domain/error"
)

// ExportMonthlySummaryInput represents the input for exporting a month.
type ExportMonthlySummaryInput struct {
	Session entity.Session
	Month   string
}

// ExportMonthlySummaryOutput carries the encoded document.
type ExportMonthlySummaryOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportMonthlySummaryUseCase renders the monthly report as a document.
type ExportMonthlySummaryUseCase struct {
	entryRepo adapter.EntryRepository
	exporter  SummaryExporter
	now       func() time.Time
}

// NewExportMonthlySummaryUseCase creates a new ExportMonthlySummaryUseCase instance.
func NewExportMonthlySummaryUseCase(entryRepo adapter.EntryRepository, exporter SummaryExporter) *ExportMonthlySummaryUseCase {
	return &ExportMonthlySummaryUseCase{
		entryRepo: entryRepo,
		exporter:  exporter,
		now:       time.Now,
	}
}

// WithClock replaces the clock used to resolve the default month.
func (uc *ExportMonthlySummaryUseCase) WithClock(now func() time.Time) *ExportMonthlySummaryUseCase {
	uc.now = now
	return uc
}

// Execute summarizes the month and hands the report to the exporter.
func (uc *ExportMonthlySummaryUseCase) Execute(ctx context.Context, input ExportMonthlySummaryInput) (*ExportMonthlySummaryOutput, error) {
	period, err := resolvePeriod(input.Month, uc.now())
	if err != nil {
		return nil, err
	}

	entries, err := loadMonth(ctx, uc.entryRepo, input.Session.UserID, period)
	if err != nil {
		return nil, err
	}

	content, err := uc.exporter.Export(ctx, Summarize(entries, period))
	if err != nil {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeDashboardInternalError,
			"failed to export monthly summary",
			err,
		)
	}

	return &ExportMonthlySummaryOutput{
		FileName:    fmt.Sprintf("kakeibo-%s%s", period, uc.exporter.Extension()),
		ContentType: uc.exporter.ContentType(),
		Content:     content,
	}, nil
}
