package error

import "errors"

var (
	ErrEmailQueueFailed      = errors.New("failed to queue email")
	ErrMissingRecipient      = errors.New("email recipient address is empty")
	ErrInvalidTemplate       = errors.New("invalid email template")
	ErrPermanentEmailFailure = errors.New("permanent email failure")
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode follows EMAIL-XXYYYY: 01 queue, 02 delivery, 03 templates.
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"
	ErrCodeMissingRecipient EmailErrorCode = "EMAIL-010002"

	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// permanentEmailCodes are failures a retry cannot fix.
var permanentEmailCodes = map[EmailErrorCode]bool{
	ErrCodeMissingRecipient:      true,
	ErrCodePermanentEmailFailure: true,
	ErrCodeInvalidTemplate:       true,
	ErrCodeTemplateRenderFailed:  true,
}

// EmailError is raised by the queue, the worker, and senders.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// IsPermanent reports whether the job should be closed instead of retried.
func (e *EmailError) IsPermanent() bool {
	return permanentEmailCodes[e.Code]
}

func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
