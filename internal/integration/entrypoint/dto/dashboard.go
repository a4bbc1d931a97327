package dto

import (
	"github.com/shopspring/decimal"

	"github.com/kakeibo/backend/internal/application/usecase/dashboard"
)

// MonthlyTotalsResponse holds the income, expense and balance of a month.
type MonthlyTotalsResponse struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Balance int64 `json:"balance"`
}

// DailyTotalsResponse holds the totals of one day.
type DailyTotalsResponse struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// CategoryTotalResponse holds the total of one category bucket.
type CategoryTotalResponse struct {
	Name       string          `json:"name"`
	CategoryID *string         `json:"category_id"`
	Type       string          `json:"type"`
	Total      int64           `json:"total"`
	Share      decimal.Decimal `json:"share"`
}

// CalendarDayResponse is one cell of the calendar grid.
type CalendarDayResponse struct {
	Day     int    `json:"day"`
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

// MonthlySummaryResponse represents the dashboard of one month.
// Calendar holds null cells before the first day of the month.
type MonthlySummaryResponse struct {
	Month      string                  `json:"month"`
	Previous   string                  `json:"previous"`
	Next       string                  `json:"next"`
	Monthly    MonthlyTotalsResponse   `json:"monthly"`
	Daily      []DailyTotalsResponse   `json:"daily"`
	Categories []CategoryTotalResponse `json:"categories"`
	Calendar   []*CalendarDayResponse  `json:"calendar"`
}

// CategoryEntriesResponse represents the drill-down of one category bucket.
type CategoryEntriesResponse struct {
	Month   string          `json:"month"`
	Name    string          `json:"name"`
	Total   int64           `json:"total"`
	Entries []EntryResponse `json:"entries"`
}

// TrendPointResponse holds the totals of one month of a trend window.
type TrendPointResponse struct {
	Month string `json:"month"`
	MonthlyTotalsResponse
}

// MonthlyTrendsResponse represents the month-over-month totals, oldest first.
type MonthlyTrendsResponse struct {
	Points []TrendPointResponse `json:"points"`
}

func toMonthlyTotalsResponse(totals dashboard.MonthlyTotals) MonthlyTotalsResponse {
	return MonthlyTotalsResponse{
		Income:  totals.Income,
		Expense: totals.Expense,
		Balance: totals.Balance,
	}
}

// ToMonthlySummaryResponse converts a MonthlyReport to a MonthlySummaryResponse DTO.
func ToMonthlySummaryResponse(report *dashboard.MonthlyReport) MonthlySummaryResponse {
	resp := MonthlySummaryResponse{
		Month:      report.Period.String(),
		Previous:   report.Period.Shift(-1).String(),
		Next:       report.Period.Shift(1).String(),
		Monthly:    toMonthlyTotalsResponse(report.Monthly),
		Daily:      make([]DailyTotalsResponse, len(report.Daily)),
		Categories: make([]CategoryTotalResponse, len(report.Categories)),
		Calendar:   make([]*CalendarDayResponse, len(report.Calendar)),
	}

	for i, day := range report.Daily {
		resp.Daily[i] = DailyTotalsResponse{
			Date:    day.Date,
			Income:  day.Income,
			Expense: day.Expense,
		}
	}

	for i, total := range report.Categories {
		var categoryID *string
		if total.CategoryID != nil {
			id := total.CategoryID.String()
			categoryID = &id
		}
		resp.Categories[i] = CategoryTotalResponse{
			Name:       total.Name,
			CategoryID: categoryID,
			Type:       string(total.Type),
			Total:      total.Total,
			Share:      total.Share,
		}
	}

	for i, cell := range report.Calendar {
		if cell == nil {
			continue
		}
		resp.Calendar[i] = &CalendarDayResponse{
			Day:     cell.Day,
			Date:    cell.Date,
			Income:  cell.Income,
			Expense: cell.Expense,
		}
	}

	return resp
}

// ToCategoryEntriesResponse converts a GetCategoryEntriesOutput to a CategoryEntriesResponse DTO.
func ToCategoryEntriesResponse(output *dashboard.GetCategoryEntriesOutput) CategoryEntriesResponse {
	return CategoryEntriesResponse{
		Month:   output.Period.String(),
		Name:    output.Name,
		Total:   output.Total,
		Entries: ToEntryResponses(output.Entries),
	}
}

// ToMonthlyTrendsResponse converts a GetMonthlyTrendsOutput to a MonthlyTrendsResponse DTO.
func ToMonthlyTrendsResponse(output *dashboard.GetMonthlyTrendsOutput) MonthlyTrendsResponse {
	resp := MonthlyTrendsResponse{Points: make([]TrendPointResponse, len(output.Points))}
	for i, point := range output.Points {
		resp.Points[i] = TrendPointResponse{
			Month:                 point.Period.String(),
			MonthlyTotalsResponse: toMonthlyTotalsResponse(point.MonthlyTotals),
		}
	}
	return resp
}
