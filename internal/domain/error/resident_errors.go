// Package error defines domain-specific errors for the residence ledger.
package error

import "errors"

// Resident domain errors.
var (
	// ErrResidentNotFound is returned when a resident does not exist.
	ErrResidentNotFound = errors.New("resident not found")

	// ErrDuplicateIdentityNumber is returned when the identity number is already registered.
	ErrDuplicateIdentityNumber = errors.New("identity number already registered")

	// ErrInvalidMonthlyRent is returned when the monthly rent is negative.
	ErrInvalidMonthlyRent = errors.New("monthly rent must not be negative")

	// ErrResidentAlreadyCheckedOut is returned when checking out an inactive resident.
	ErrResidentAlreadyCheckedOut = errors.New("resident already checked out")

	// ErrMissingResidentFields is returned when required resident fields are empty.
	ErrMissingResidentFields = errors.New("missing required resident fields")
)

// ResidentErrorCode defines error codes for resident errors.
// Format: RES-XXYYYY where XX is category and YYYY is specific error.
type ResidentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingResidentFields ResidentErrorCode = "RES-010001"
	ErrCodeInvalidMonthlyRent    ResidentErrorCode = "RES-010002"
	ErrCodeInvalidCheckInDate    ResidentErrorCode = "RES-010003"
	ErrCodeInvalidResidentID     ResidentErrorCode = "RES-010004"

	// State errors (02XXXX)
	ErrCodeResidentNotFound          ResidentErrorCode = "RES-020001"
	ErrCodeDuplicateIdentityNumber   ResidentErrorCode = "RES-020002"
	ErrCodeResidentAlreadyCheckedOut ResidentErrorCode = "RES-020003"
)

// ResidentError represents a resident error with code and message.
type ResidentError struct {
	Code    ResidentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ResidentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ResidentError) Unwrap() error {
	return e.Err
}

// NewResidentError creates a new ResidentError with the given code and message.
func NewResidentError(code ResidentErrorCode, message string, err error) *ResidentError {
	return &ResidentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
