package error

import "errors"

// Entry domain errors.
var (
	// ErrEntryNotFound is returned when an entry is not found in the system.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidAmount is returned when the amount is not a positive whole number.
	ErrInvalidAmount = errors.New("amount must be a positive whole number")

	// ErrInvalidEntryType is returned when the entry type is invalid.
	ErrInvalidEntryType = errors.New("invalid entry type")

	// ErrInvalidEntryDate is returned when happened_on is not a valid calendar date.
	ErrInvalidEntryDate = errors.New("invalid entry date")

	// ErrNoteTooLong is returned when the note exceeds the maximum length.
	ErrNoteTooLong = errors.New("note too long")

	// ErrCategoryTypeMismatch is returned when the entry type differs from its category type.
	ErrCategoryTypeMismatch = errors.New("category type does not match entry type")

	// ErrNotAuthorizedToModifyEntry is returned when user is not authorized to modify an entry.
	ErrNotAuthorizedToModifyEntry = errors.New("not authorized to modify entry")
)

// EntryErrorCode defines error codes for entry errors.
// Format: ENT-XXYYYY where XX is category and YYYY is specific error.
type EntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount         EntryErrorCode = "ENT-010001"
	ErrCodeInvalidEntryType      EntryErrorCode = "ENT-010002"
	ErrCodeInvalidEntryDate      EntryErrorCode = "ENT-010003"
	ErrCodeNoteTooLong           EntryErrorCode = "ENT-010004"
	ErrCodeEntryCategoryNotFound EntryErrorCode = "ENT-010005"
	ErrCodeCategoryTypeMismatch  EntryErrorCode = "ENT-010006"
	ErrCodeMissingEntryFields    EntryErrorCode = "ENT-010007"
	ErrCodeInvalidEntryMonth     EntryErrorCode = "ENT-010008"

	// Lookup and ownership errors (02XXXX)
	ErrCodeEntryNotFound      EntryErrorCode = "ENT-020001"
	ErrCodeNotAuthorizedEntry EntryErrorCode = "ENT-020002"
)

// EntryError represents an entry error with code and message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError with the given code and message.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
