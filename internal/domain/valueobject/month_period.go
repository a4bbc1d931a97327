package valueobject

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// MonthPeriod is a calendar month used to scope listings and summaries.
type MonthPeriod struct {
	year  int
	month time.Month
}

// NewMonthPeriod returns the period that contains t.
func NewMonthPeriod(t time.Time) MonthPeriod {
	return MonthPeriod{year: t.Year(), month: t.Month()}
}

// MonthPeriodOf returns the period for a year and month.
func MonthPeriodOf(year int, month time.Month) MonthPeriod {
	return NewMonthPeriod(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// CurrentMonthPeriod returns the period containing now in UTC.
func CurrentMonthPeriod(now time.Time) MonthPeriod {
	return NewMonthPeriod(now.UTC())
}

// ParseMonthPeriod parses a YYYY-MM string.
func ParseMonthPeriod(value string) (MonthPeriod, error) {
	t, err := time.ParseInLocation(monthLayout, value, time.UTC)
	if err != nil {
		return MonthPeriod{}, fmt.Errorf("invalid month %q: %w", value, err)
	}
	return NewMonthPeriod(t), nil
}

// Year returns the calendar year.
func (p MonthPeriod) Year() int {
	return p.year
}

// Month returns the calendar month.
func (p MonthPeriod) Month() time.Month {
	return p.month
}

// Bounds returns the first and last calendar day of the month, both at UTC midnight.
func (p MonthPeriod) Bounds() (start, end time.Time) {
	start = time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// Days returns the number of days in the month.
func (p MonthPeriod) Days() int {
	_, end := p.Bounds()
	return end.Day()
}

// Shift moves the period by n months. Negative n moves backwards.
func (p MonthPeriod) Shift(n int) MonthPeriod {
	start, _ := p.Bounds()
	return NewMonthPeriod(start.AddDate(0, n, 0))
}

// Contains reports whether t falls inside the period.
func (p MonthPeriod) Contains(t time.Time) bool {
	return t.Year() == p.year && t.Month() == p.month
}

// IsZero reports whether the period was never set.
func (p MonthPeriod) IsZero() bool {
	return p.year == 0 && p.month == 0
}

// String formats the period as YYYY-MM.
func (p MonthPeriod) String() string {
	start, _ := p.Bounds()
	return start.Format(monthLayout)
}
