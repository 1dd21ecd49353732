package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email job is rendered with.
type EmailTemplateType string

const (
	TemplatePaymentReminder EmailTemplateType = "payment_reminder"
	TemplateWelcome         EmailTemplateType = "welcome"
)

const maxEmailAttempts = 3

// Backoff before attempt n+1, indexed by attempts already made.
var emailBackoff = [...]time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is one outbound resident email. Reference ties the job to what
// caused it, e.g. "reminder:<resident>:2024-04".
type EmailJob struct {
	ID             uuid.UUID
	TemplateType   EmailTemplateType
	Reference      string
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ProviderID     string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ClaimedAt      *time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob queues an email due at now.
func NewEmailJob(templateType EmailTemplateType, reference, recipientEmail, recipientName, subject string, data map[string]any, now time.Time) *EmailJob {
	if data == nil {
		data = map[string]any{}
	}
	now = now.UTC()

	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		Reference:      reference,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    maxEmailAttempts,
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// ReminderReference identifies the reminder of a resident for a "YYYY-MM" period.
func ReminderReference(residentID uuid.UUID, period string) string {
	return "reminder:" + residentID.String() + ":" + period
}

// WelcomeReference identifies the welcome email of a resident.
func WelcomeReference(residentID uuid.UUID) string {
	return "welcome:" + residentID.String()
}

// Claim marks the job as taken by a worker at now.
func (e *EmailJob) Claim(now time.Time) {
	now = now.UTC()
	e.Status = EmailStatusProcessing
	e.ClaimedAt = &now
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerID string, now time.Time) {
	now = now.UTC()
	e.Status = EmailStatusSent
	e.ProviderID = providerID
	e.ClaimedAt = nil
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. A permanent failure or the last
// allowed attempt closes the job; otherwise it is rescheduled.
func (e *EmailJob) MarkFailed(err error, permanent bool, now time.Time) {
	now = now.UTC()
	e.Attempts++
	e.LastError = err.Error()
	e.ClaimedAt = nil

	if permanent || e.Attempts >= e.MaxAttempts {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	e.Status = EmailStatusPending
	e.ScheduledAt = now.Add(backoff(e.Attempts))
}

// CanRetry reports whether attempts remain.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsDue reports whether the job is pending and scheduled at or before now.
func (e *EmailJob) IsDue(now time.Time) bool {
	return e.Status == EmailStatusPending && !now.Before(e.ScheduledAt)
}

// IsStale reports whether a claimed job has been in flight since before cutoff.
func (e *EmailJob) IsStale(cutoff time.Time) bool {
	return e.Status == EmailStatusProcessing && e.ClaimedAt != nil && e.ClaimedAt.Before(cutoff)
}

func backoff(attempts int) time.Duration {
	if attempts < len(emailBackoff) {
		return emailBackoff[attempts]
	}
	return emailBackoff[len(emailBackoff)-1]
}
