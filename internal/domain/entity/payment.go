package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid reports whether the payment method is known.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is a rent payment credited to a billing period. Payments are never updated.
type Payment struct {
	ID                 uuid.UUID
	ResidentID         uuid.UUID
	Amount             decimal.Decimal
	PaymentDate        time.Time
	ForMonth           BillingPeriod
	PaymentMethod      PaymentMethod
	ProcessorReference string
	Notes              string
	RecordedBy         string
	CreatedAt          time.Time
}

// NewPayment creates a new Payment entity.
func NewPayment(
	residentID uuid.UUID,
	amount decimal.Decimal,
	paymentDate time.Time,
	forMonth BillingPeriod,
	method PaymentMethod,
	processorReference string,
	notes string,
	recordedBy string,
) *Payment {
	if method == "" {
		method = PaymentMethodCash
	}

	return &Payment{
		ID:                 uuid.New(),
		ResidentID:         residentID,
		Amount:             amount,
		PaymentDate:        paymentDate.UTC(),
		ForMonth:           forMonth,
		PaymentMethod:      method,
		ProcessorReference: processorReference,
		Notes:              notes,
		RecordedBy:         recordedBy,
		CreatedAt:          time.Now().UTC(),
	}
}
