package error

import "errors"

// Payment domain errors.
var (
	// ErrPaymentNotFound is returned when a payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidPaymentAmount is returned when the amount is zero or negative.
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")

	// ErrInvalidBillingPeriod is returned when a billing period cannot be parsed.
	ErrInvalidBillingPeriod = errors.New("invalid billing period, expected YYYY-MM")

	// ErrInvalidPaymentMethod is returned for an unknown payment method.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrPaymentResidentNotFound is returned when paying for an unknown resident.
	ErrPaymentResidentNotFound = errors.New("resident for payment not found")

	// ErrPaymentResidentInactive is returned when paying for a checked-out resident.
	ErrPaymentResidentInactive = errors.New("resident has checked out")
)

// PaymentErrorCode defines error codes for payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type PaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingPaymentFields PaymentErrorCode = "PAY-010001"
	ErrCodeInvalidPaymentAmount PaymentErrorCode = "PAY-010002"
	ErrCodeInvalidBillingPeriod PaymentErrorCode = "PAY-010003"
	ErrCodeInvalidPaymentMethod PaymentErrorCode = "PAY-010004"
	ErrCodeInvalidPaymentDate   PaymentErrorCode = "PAY-010005"

	// State errors (02XXXX)
	ErrCodePaymentNotFound         PaymentErrorCode = "PAY-020001"
	ErrCodePaymentResidentNotFound PaymentErrorCode = "PAY-020002"
	ErrCodePaymentResidentInactive PaymentErrorCode = "PAY-020003"
)

// PaymentError represents a payment error with code and message.
type PaymentError struct {
	Code    PaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a new PaymentError with the given code and message.
func NewPaymentError(code PaymentErrorCode, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
