package entity

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEventKind names what changed in a user's ledger.
type LedgerEventKind string

const (
	LedgerEventEntryCreated    LedgerEventKind = "entry.created"
	LedgerEventEntryUpdated    LedgerEventKind = "entry.updated"
	LedgerEventEntryDeleted    LedgerEventKind = "entry.deleted"
	LedgerEventCategoryDeleted LedgerEventKind = "category.deleted"
)

// LedgerEvent notifies interested aggregators that a user's ledger changed.
// Months lists the affected YYYY-MM periods; empty means any month may be affected.
type LedgerEvent struct {
	Kind       LedgerEventKind `json:"kind"`
	UserID     uuid.UUID       `json:"user_id"`
	SubjectID  uuid.UUID       `json:"subject_id"`
	Months     []string        `json:"months,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewLedgerEvent creates a LedgerEvent stamped with the current time.
func NewLedgerEvent(kind LedgerEventKind, userID, subjectID uuid.UUID, months ...string) LedgerEvent {
	return LedgerEvent{
		Kind:       kind,
		UserID:     userID,
		SubjectID:  subjectID,
		Months:     months,
		OccurredAt: time.Now().UTC(),
	}
}

// Affects reports whether the event may change the summary of the given YYYY-MM month.
func (e LedgerEvent) Affects(month string) bool {
	if len(e.Months) == 0 {
		return true
	}
	for _, m := range e.Months {
		if m == month {
			return true
		}
	}
	return false
}
