package entity

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for entries.
const DateLayout = "2006-01-02"

// Entry represents a single income or expense record.
type Entry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Type       CategoryType
	Amount     int64
	HappenedOn time.Time
	Note       string
	CategoryID *uuid.UUID
	// Category is populated on reads when the entry references a category.
	Category  *Category
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEntry creates a new Entry entity. happenedOn is truncated to its calendar date.
func NewEntry(userID uuid.UUID, entryType CategoryType, amount int64, happenedOn time.Time, note string, categoryID *uuid.UUID) *Entry {
	now := time.Now().UTC()

	return &Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       entryType,
		Amount:     amount,
		HappenedOn: DateOnly(happenedOn),
		Note:       note,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Date returns the entry date formatted as YYYY-MM-DD.
func (e *Entry) Date() string {
	return e.HappenedOn.Format(DateLayout)
}

// Month returns the entry month formatted as YYYY-MM.
func (e *Entry) Month() string {
	return e.HappenedOn.Format("2006-01")
}

// CategoryName returns the name of the referenced category or the uncategorized bucket name.
func (e *Entry) CategoryName() string {
	if e.Category == nil {
		return UncategorizedName
	}
	return e.Category.Name
}

// DateOnly strips the clock from t and pins it to UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}
