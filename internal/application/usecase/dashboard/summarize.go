package dashboard

import (
	"sort"

	"github.com/kakeibo/backend/internal/domain/entity"
	"github.com/kakeibo/backend/internal/domain/valueobject"
)

type bucketKey struct {
	name      string
	entryType entity.CategoryType
}

// Summarize derives the monthly, daily, category and calendar aggregates.
// entries must already be restricted to the period; dates are not re-checked.
func Summarize(entries []*entity.Entry, period valueobject.MonthPeriod) *MonthlyReport {
	report := &MonthlyReport{Period: period}

	daily := make(map[string]*DailyTotals)
	buckets := make(map[bucketKey]*CategoryTotal)
	var order []bucketKey

	for _, e := range entries {
		date := e.Date()
		day, ok := daily[date]
		if !ok {
			day = &DailyTotals{Date: date}
			daily[date] = day
		}

		switch e.Type {
		case entity.CategoryTypeIncome:
			report.Monthly.Income += e.Amount
			day.Income += e.Amount
		case entity.CategoryTypeExpense:
			report.Monthly.Expense += e.Amount
			day.Expense += e.Amount
		}

		key := bucketKey{name: e.CategoryName(), entryType: e.Type}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &CategoryTotal{Name: key.name, Type: e.Type}
			if e.Category != nil {
				id := e.Category.ID
				bucket.CategoryID = &id
			}
			buckets[key] = bucket
			order = append(order, key)
		}
		bucket.Total += e.Amount
	}
	report.Monthly.Balance = report.Monthly.Income - report.Monthly.Expense

	report.Daily = make([]DailyTotals, 0, len(daily))
	for _, d := range daily {
		report.Daily = append(report.Daily, *d)
	}
	sort.Slice(report.Daily, func(i, j int) bool {
		return report.Daily[i].Date > report.Daily[j].Date
	})

	report.Categories = make([]CategoryTotal, 0, len(order))
	for _, key := range order {
		bucket := buckets[key]
		bucket.Share = valueobject.SharePercent(bucket.Total, report.Monthly.totalFor(bucket.Type))
		report.Categories = append(report.Categories, *bucket)
	}
	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Total > report.Categories[j].Total
	})

	report.Calendar = buildCalendar(period, daily)
	return report
}

func (m MonthlyTotals) totalFor(entryType entity.CategoryType) int64 {
	if entryType == entity.CategoryTypeIncome {
		return m.Income
	}
	return m.Expense
}

func buildCalendar(period valueobject.MonthPeriod, daily map[string]*DailyTotals) []*CalendarDay {
	start, _ := period.Bounds()
	offset := int(start.Weekday())
	days := period.Days()

	grid := make([]*CalendarDay, offset, offset+days)
	for d := 1; d <= days; d++ {
		date := start.AddDate(0, 0, d-1).Format(entity.DateLayout)
		cell := &CalendarDay{Day: d, Date: date}
		if totals, ok := daily[date]; ok {
			cell.Income = totals.Income
			cell.Expense = totals.Expense
		}
		grid = append(grid, cell)
	}
	return grid
}
