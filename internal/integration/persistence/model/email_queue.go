package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
// TemplateData holds the template variables as a JSON object.
type EmailQueueModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TemplateType   string     `gorm:"type:varchar(50);not null"`
	Reference      string     `gorm:"type:varchar(120);index"`
	RecipientEmail string     `gorm:"type:varchar(255);not null"`
	RecipientName  string     `gorm:"type:varchar(255)"`
	Subject        string     `gorm:"type:varchar(500);not null"`
	TemplateData   string     `gorm:"type:text;not null"`
	Status         string     `gorm:"type:varchar(20);not null;index:idx_email_queue_due,priority:1"`
	Attempts       int        `gorm:"not null"`
	MaxAttempts    int        `gorm:"not null"`
	LastError      string     `gorm:"type:text"`
	ProviderID     string     `gorm:"type:varchar(100)"`
	CreatedAt      time.Time  `gorm:"not null"`
	ScheduledAt    time.Time  `gorm:"not null;index:idx_email_queue_due,priority:2"`
	ClaimedAt      *time.Time `gorm:"index"`
	ProcessedAt    *time.Time
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts the row into an EmailJob. Undecodable template data
// yields an empty map and is logged.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := map[string]any{}
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &data); err != nil {
			slog.Warn("Discarding unreadable email template data", "job_id", m.ID, "error", err)
			data = map[string]any{}
		}
	}

	return &entity.EmailJob{
		ID:             m.ID,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		Reference:      m.Reference,
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   data,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		CreatedAt:      m.CreatedAt,
		ScheduledAt:    m.ScheduledAt,
		ClaimedAt:      m.ClaimedAt,
		ProcessedAt:    m.ProcessedAt,
	}
}

// EmailQueueModelFromEntity converts an EmailJob into its row. Timestamps
// are stored in UTC so due-date comparisons hold on sqlite.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	data, err := json.Marshal(job.TemplateData)
	if err != nil {
		slog.Error("Failed to encode email template data", "job_id", job.ID, "error", err)
		data = []byte("{}")
	}

	return &EmailQueueModel{
		ID:             job.ID,
		TemplateType:   string(job.TemplateType),
		Reference:      job.Reference,
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   string(data),
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		CreatedAt:      job.CreatedAt.UTC(),
		ScheduledAt:    job.ScheduledAt.UTC(),
		ClaimedAt:      utcPtr(job.ClaimedAt),
		ProcessedAt:    utcPtr(job.ProcessedAt),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
