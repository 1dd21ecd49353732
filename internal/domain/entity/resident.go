package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Resident represents a person housed in the facility.
type Resident struct {
	ID             uuid.UUID
	FullName       string
	IdentityNumber string
	Phone          string
	Email          string // Optional, reminders are skipped when empty
	RoomNumber     string
	CheckInDate    time.Time
	CheckOutDate   *time.Time // Set on checkout; implies IsActive == false
	MonthlyRent    decimal.Decimal
	IsActive       bool
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewResident creates an active Resident entity.
func NewResident(
	fullName string,
	identityNumber string,
	phone string,
	email string,
	roomNumber string,
	checkInDate time.Time,
	monthlyRent decimal.Decimal,
	notes string,
) *Resident {
	now := time.Now().UTC()

	return &Resident{
		ID:             uuid.New(),
		FullName:       strings.TrimSpace(fullName),
		IdentityNumber: strings.TrimSpace(identityNumber),
		Phone:          strings.TrimSpace(phone),
		Email:          strings.TrimSpace(email),
		RoomNumber:     strings.TrimSpace(roomNumber),
		CheckInDate:    checkInDate.UTC(),
		MonthlyRent:    monthlyRent,
		IsActive:       true,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// CheckOut marks the resident as departed. The record is retained.
func (r *Resident) CheckOut(at time.Time) {
	checkout := at.UTC()
	r.CheckOutDate = &checkout
	r.IsActive = false
	r.UpdatedAt = time.Now().UTC()
}

// HasContactAddress reports whether the resident can receive email.
func (r *Resident) HasContactAddress() bool {
	return strings.TrimSpace(r.Email) != ""
}
