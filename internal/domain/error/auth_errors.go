package error

import "errors"

// Authentication errors.
var (
	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("insufficient role for this operation")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Authorization errors (04XXXX)
	ErrCodeForbidden   AuthErrorCode = "AUTH-040001"
	ErrCodeRateLimited AuthErrorCode = "AUTH-040002"
)
