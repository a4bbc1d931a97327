package adapters

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kakeibo/backend/internal/application/usecase/dashboard"
)

const (
	sheetSummary    = "Summary"
	sheetDaily      = "Daily"
	sheetCategories = "Categories"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	headerFillColor = "#6366F1"
)

type excelExporter struct{}

// NewExcelExporter creates a dashboard.SummaryExporter producing .xlsx workbooks.
func NewExcelExporter() dashboard.SummaryExporter {
	return &excelExporter{}
}

func (e *excelExporter) ContentType() string {
	return xlsxContentType
}

func (e *excelExporter) Extension() string {
	return ".xlsx"
}

// Export writes the report into three sheets: monthly totals, daily totals and category totals.
func (e *excelExporter) Export(_ context.Context, report *dashboard.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	for _, name := range []string{sheetDaily, sheetCategories} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// #,##0
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	summary := [][]any{
		{"Month", report.Period.String()},
		{"Income", report.Monthly.Income},
		{"Expense", report.Monthly.Expense},
		{"Balance", report.Monthly.Balance},
	}
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", "A4", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetSummary, "B2", "B4", amountStyle); err != nil {
		return nil, err
	}

	daily := [][]any{{"Date", "Income", "Expense"}}
	for _, d := range report.Daily {
		daily = append(daily, []any{d.Date, d.Income, d.Expense})
	}
	if err := writeTable(f, sheetDaily, daily, "C", headerStyle, amountStyle); err != nil {
		return nil, err
	}

	categories := [][]any{{"Category", "Type", "Total", "Share (%)"}}
	for _, c := range report.Categories {
		share, _ := c.Share.Float64()
		categories = append(categories, []any{c.Name, string(c.Type), c.Total, share})
	}
	if err := writeTable(f, sheetCategories, categories, "D", headerStyle, amountStyle); err != nil {
		return nil, err
	}

	for _, sheet := range []string{sheetSummary, sheetDaily, sheetCategories} {
		if err := f.SetColWidth(sheet, "A", "D", 16); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable writes a header row followed by data rows and styles the numeric columns B..lastCol.
func writeTable(f *excelize.File, sheet string, rows [][]any, lastCol string, headerStyle, amountStyle int) error {
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}
	if len(rows) > 1 {
		end := fmt.Sprintf("%s%d", lastCol, len(rows))
		if err := f.SetCellStyle(sheet, "B2", end, amountStyle); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
