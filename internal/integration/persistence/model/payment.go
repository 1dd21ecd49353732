package model

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// PaymentModel represents the payments table in the database.
// ForMonth holds the billing period key as "YYYY-MM".
type PaymentModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ResidentID         uuid.UUID       `gorm:"type:uuid;not null;index;index:idx_payments_resident_month,priority:1"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaymentDate        time.Time       `gorm:"not null;index"`
	ForMonth           string          `gorm:"type:varchar(7);not null;index;index:idx_payments_resident_month,priority:2"`
	PaymentMethod      string          `gorm:"type:varchar(20);not null;default:'cash'"`
	ProcessorReference string          `gorm:"type:varchar(100)"`
	Notes              string          `gorm:"type:text"`
	RecordedBy         string          `gorm:"type:varchar(255)"`
	CreatedAt          time.Time       `gorm:"not null"`

	Resident *ResidentModel `gorm:"foreignKey:ResidentID;references:ID"`
}

// TableName returns the table name for the PaymentModel.
func (PaymentModel) TableName() string {
	return "payments"
}

// ToEntity converts a PaymentModel to a domain Payment entity.
func (m *PaymentModel) ToEntity() *entity.Payment {
	period, err := entity.ParseBillingPeriod(m.ForMonth)
	if err != nil {
		slog.Warn("Stored payment has an invalid billing period", "id", m.ID, "for_month", m.ForMonth)
	}

	return &entity.Payment{
		ID:                 m.ID,
		ResidentID:         m.ResidentID,
		Amount:             m.Amount,
		PaymentDate:        m.PaymentDate.UTC(),
		ForMonth:           period,
		PaymentMethod:      entity.PaymentMethod(m.PaymentMethod),
		ProcessorReference: m.ProcessorReference,
		Notes:              m.Notes,
		RecordedBy:         m.RecordedBy,
		CreatedAt:          m.CreatedAt,
	}
}

// PaymentFromEntity creates a PaymentModel from a domain Payment entity.
func PaymentFromEntity(p *entity.Payment) *PaymentModel {
	return &PaymentModel{
		ID:                 p.ID,
		ResidentID:         p.ResidentID,
		Amount:             p.Amount,
		PaymentDate:        p.PaymentDate.UTC(),
		ForMonth:           p.ForMonth.String(),
		PaymentMethod:      string(p.PaymentMethod),
		ProcessorReference: p.ProcessorReference,
		Notes:              p.Notes,
		RecordedBy:         p.RecordedBy,
		CreatedAt:          p.CreatedAt,
	}
}
