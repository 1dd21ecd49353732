package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingPaymentEntry is an active resident with no payment for a billing period.
// It is derived on demand and never persisted.
type PendingPaymentEntry struct {
	ResidentID     uuid.UUID
	ResidentName   string
	Email          string
	RoomNumber     string
	ExpectedAmount decimal.Decimal
	ForMonth       BillingPeriod
}

// NewPendingPaymentEntry builds the pending view of a resident for a period.
func NewPendingPaymentEntry(r *Resident, period BillingPeriod) *PendingPaymentEntry {
	return &PendingPaymentEntry{
		ResidentID:     r.ID,
		ResidentName:   r.FullName,
		Email:          r.Email,
		RoomNumber:     r.RoomNumber,
		ExpectedAmount: r.MonthlyRent,
		ForMonth:       period,
	}
}
