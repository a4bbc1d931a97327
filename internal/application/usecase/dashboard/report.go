// Package dashboard contains the monthly aggregation use cases.
package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kakeibo/backend/internal/domain/entity"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

// MonthlyTotals holds the income and expense sums of a month.
// Balance is income minus expense.
type MonthlyTotals struct {
	Income  int64
	Expense int64
	Balance int64
}

// DailyTotals holds the sums for one calendar date.
type DailyTotals struct {
	Date    string
	Income  int64
	Expense int64
}

// CategoryTotal is one bucket of the category summary.
type CategoryTotal struct {
	Name string
	// CategoryID is nil for the uncategorized bucket.
	CategoryID *uuid.UUID
	Type       entity.CategoryType
	Total      int64
	// Share is the percentage of the monthly total of the same type.
	Share decimal.Decimal
}

// CalendarDay is a populated cell of the month grid.
type CalendarDay struct {
	Day     int
	Date    string
	Income  int64
	Expense int64
}

// MonthlyReport is the full set of aggregates derived from a month of entries.
type MonthlyReport struct {
	Period     valueobject.MonthPeriod
	Monthly    MonthlyTotals
	Daily      []DailyTotals
	Categories []CategoryTotal
	// Calendar starts with nil cells for the weekday offset of the first day (0 = Sunday).
	Calendar []*CalendarDay
}

// SummaryExporter renders a monthly report into a downloadable document.
type SummaryExporter interface {
	// Export returns the encoded document.
	Export(ctx context.Context, report *MonthlyReport) ([]byte, error)

	// ContentType returns the MIME type of the encoded document.
	ContentType() string

	// Extension returns the file extension, including the leading dot.
	Extension() string
}
