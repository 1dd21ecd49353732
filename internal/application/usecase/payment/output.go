// Package payment contains rent payment use cases.
package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// PaymentOutput represents a payment in use case outputs.
type PaymentOutput struct {
	ID                 uuid.UUID
	ResidentID         uuid.UUID
	Amount             decimal.Decimal
	PaymentDate        time.Time
	ForMonth           entity.BillingPeriod
	PaymentMethod      entity.PaymentMethod
	ProcessorReference string
	Notes              string
	RecordedBy         string
	CreatedAt          time.Time
}

func toOutput(p *entity.Payment) *PaymentOutput {
	return &PaymentOutput{
		ID:                 p.ID,
		ResidentID:         p.ResidentID,
		Amount:             p.Amount,
		PaymentDate:        p.PaymentDate,
		ForMonth:           p.ForMonth,
		PaymentMethod:      p.PaymentMethod,
		ProcessorReference: p.ProcessorReference,
		Notes:              p.Notes,
		RecordedBy:         p.RecordedBy,
		CreatedAt:          p.CreatedAt,
	}
}

func toOutputs(payments []*entity.Payment) []*PaymentOutput {
	outputs := make([]*PaymentOutput, len(payments))
	for i, p := range payments {
		outputs[i] = toOutput(p)
	}
	return outputs
}

func sum(payments []*entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
