package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/usecase/resident"
)

// CreateResidentRequest represents the request body for admitting a resident.
type CreateResidentRequest struct {
	FullName       string          `json:"full_name" binding:"required,max=200"`
	IdentityNumber string          `json:"identity_number" binding:"required,max=50"`
	Phone          string          `json:"phone,omitempty" binding:"omitempty,max=30"`
	Email          string          `json:"email,omitempty" binding:"omitempty,email"`
	RoomNumber     string          `json:"room_number" binding:"required,max=20"`
	CheckInDate    string          `json:"check_in_date" binding:"required"`
	MonthlyRent    decimal.Decimal `json:"monthly_rent"`
	Notes          string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// CheckoutResidentRequest represents the optional body of a checkout.
type CheckoutResidentRequest struct {
	CheckOutDate string `json:"check_out_date,omitempty"`
}

// ResidentResponse represents a resident in API responses.
type ResidentResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	IdentityNumber string    `json:"identity_number"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	RoomNumber     string    `json:"room_number"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   *string   `json:"check_out_date"`
	MonthlyRent    string    `json:"monthly_rent"`
	IsActive       bool      `json:"is_active"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ResidentListResponse represents a resident listing.
type ResidentListResponse struct {
	Residents []ResidentResponse `json:"residents"`
	Total     int                `json:"total"`
}

// ToResidentResponse converts a ResidentOutput to a ResidentResponse DTO.
func ToResidentResponse(r *resident.ResidentOutput) ResidentResponse {
	return ResidentResponse{
		ID:             r.ID.String(),
		FullName:       r.FullName,
		IdentityNumber: r.IdentityNumber,
		Phone:          r.Phone,
		Email:          r.Email,
		RoomNumber:     r.RoomNumber,
		CheckInDate:    Date(r.CheckInDate),
		CheckOutDate:   OptionalDate(r.CheckOutDate),
		MonthlyRent:    Money(r.MonthlyRent),
		IsActive:       r.IsActive,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// ToResidentListResponse converts a ListResidentsOutput to a ResidentListResponse DTO.
func ToResidentListResponse(output *resident.ListResidentsOutput) ResidentListResponse {
	residents := make([]ResidentResponse, len(output.Residents))
	for i, r := range output.Residents {
		residents[i] = ToResidentResponse(r)
	}
	return ResidentListResponse{
		Residents: residents,
		Total:     output.Total,
	}
}
