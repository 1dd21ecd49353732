package error

import "errors"

// Reminder domain errors.
var (
	// ErrSweepInProgress is returned when a reminder sweep is already running.
	ErrSweepInProgress = errors.New("reminder sweep already in progress")

	// ErrInvalidSchedule is returned when the trigger expression cannot be parsed.
	ErrInvalidSchedule = errors.New("invalid reminder schedule")

	// ErrReminderDispatchFailed is returned when a reminder cannot be handed to the notifier.
	ErrReminderDispatchFailed = errors.New("failed to dispatch payment reminder")
)

// ReminderErrorCode defines error codes for reminder errors.
// Format: REM-XXYYYY where XX is category and YYYY is specific error.
type ReminderErrorCode string

const (
	ErrCodeSweepInProgress        ReminderErrorCode = "REM-010001"
	ErrCodeInvalidSchedule        ReminderErrorCode = "REM-010002"
	ErrCodeReminderDispatchFailed ReminderErrorCode = "REM-020001"
	ErrCodeSweepFailed            ReminderErrorCode = "REM-990001"
)

// ReminderError represents a reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
