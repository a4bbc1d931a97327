package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidPeriod is returned when the requested month is malformed or out of range.
	ErrInvalidPeriod = errors.New("invalid period, expected YYYY-MM")

	// ErrInvalidBucket is returned when a drill-down names neither a category nor the uncategorized bucket.
	ErrInvalidBucket = errors.New("category_id or uncategorized is required")

	// ErrInvalidMonths is returned when a trend window is out of range.
	ErrInvalidMonths = errors.New("invalid number of months")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DASH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPeriod DashboardErrorCode = "DASH-010001"
	ErrCodeInvalidBucket DashboardErrorCode = "DASH-010002"
	ErrCodeInvalidMonths DashboardErrorCode = "DASH-010003"

	// Lookup errors (02XXXX)
	ErrCodeBucketNotFound DashboardErrorCode = "DASH-020001"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DASH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
