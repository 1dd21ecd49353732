// Package resident contains resident management use cases.
package resident

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// auditEntity names residents in the audit trail.
const auditEntity = "resident"

// ResidentOutput represents a resident in use case outputs.
type ResidentOutput struct {
	ID             uuid.UUID
	FullName       string
	IdentityNumber string
	Phone          string
	Email          string
	RoomNumber     string
	CheckInDate    time.Time
	CheckOutDate   *time.Time
	MonthlyRent    decimal.Decimal
	IsActive       bool
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func toOutput(r *entity.Resident) *ResidentOutput {
	return &ResidentOutput{
		ID:             r.ID,
		FullName:       r.FullName,
		IdentityNumber: r.IdentityNumber,
		Phone:          r.Phone,
		Email:          r.Email,
		RoomNumber:     r.RoomNumber,
		CheckInDate:    r.CheckInDate,
		CheckOutDate:   r.CheckOutDate,
		MonthlyRent:    r.MonthlyRent,
		IsActive:       r.IsActive,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
