package error

import "errors"

// Analytics domain errors.
var (
	// ErrInvalidDateRange is returned when start_date is after end_date.
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")

	// ErrInvalidDateFormat is returned when a date cannot be parsed.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidMonthsBack is returned when the series length is out of bounds.
	ErrInvalidMonthsBack = errors.New("months must be between 1 and 36")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateRange  AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidDateFormat AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidMonthsBack AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidPeriod     AnalyticsErrorCode = "ANL-010004"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternal AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents a analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
