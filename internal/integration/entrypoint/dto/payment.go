package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/usecase/billing"
	"github.com/residence-hub/backend/internal/application/usecase/payment"
)

// CreatePaymentRequest represents the request body for recording a payment.
type CreatePaymentRequest struct {
	ResidentID         string          `json:"resident_id" binding:"required"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentDate        string          `json:"payment_date" binding:"required"`
	ForMonth           string          `json:"for_month,omitempty"`
	PaymentMethod      string          `json:"payment_method,omitempty"`
	ProcessorReference string          `json:"processor_reference,omitempty" binding:"omitempty,max=100"`
	Notes              string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID                 string    `json:"id"`
	ResidentID         string    `json:"resident_id"`
	Amount             string    `json:"amount"`
	PaymentDate        string    `json:"payment_date"`
	ForMonth           string    `json:"for_month"`
	PaymentMethod      string    `json:"payment_method"`
	ProcessorReference string    `json:"processor_reference,omitempty"`
	Notes              string    `json:"notes"`
	RecordedBy         string    `json:"recorded_by"`
	CreatedAt          time.Time `json:"created_at"`
}

// PaymentListResponse represents a payment listing.
type PaymentListResponse struct {
	Payments    []PaymentResponse `json:"payments"`
	Total       int               `json:"total"`
	TotalAmount string            `json:"total_amount"`
}

// PaymentHistoryResponse represents a resident's payment history.
type PaymentHistoryResponse struct {
	ResidentID  string            `json:"resident_id"`
	Payments    []PaymentResponse `json:"payments"`
	TotalAmount string            `json:"total_amount"`
}

// PendingPaymentResponse represents one resident owing rent.
type PendingPaymentResponse struct {
	ResidentID     string `json:"resident_id"`
	ResidentName   string `json:"resident_name"`
	Email          string `json:"email"`
	RoomNumber     string `json:"room_number"`
	ExpectedAmount string `json:"expected_amount"`
	ForMonth       string `json:"for_month"`
}

// PendingPaymentsResponse lists residents without a payment for a period.
type PendingPaymentsResponse struct {
	Period        string                   `json:"period"`
	Residents     []PendingPaymentResponse `json:"residents"`
	Count         int                      `json:"count"`
	TotalExpected string                   `json:"total_expected"`
}

// ToPaymentResponse converts a PaymentOutput to a PaymentResponse DTO.
func ToPaymentResponse(p *payment.PaymentOutput) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID.String(),
		ResidentID:         p.ResidentID.String(),
		Amount:             Money(p.Amount),
		PaymentDate:        Date(p.PaymentDate),
		ForMonth:           Period(p.ForMonth),
		PaymentMethod:      string(p.PaymentMethod),
		ProcessorReference: p.ProcessorReference,
		Notes:              p.Notes,
		RecordedBy:         p.RecordedBy,
		CreatedAt:          p.CreatedAt,
	}
}

func toPaymentResponses(payments []*payment.PaymentOutput) []PaymentResponse {
	out := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		out[i] = ToPaymentResponse(p)
	}
	return out
}

// ToPaymentListResponse converts a ListPaymentsOutput to a PaymentListResponse DTO.
func ToPaymentListResponse(output *payment.ListPaymentsOutput) PaymentListResponse {
	return PaymentListResponse{
		Payments:    toPaymentResponses(output.Payments),
		Total:       output.Total,
		TotalAmount: Money(output.TotalAmount),
	}
}

// ToPaymentHistoryResponse converts a PaymentHistoryOutput to a PaymentHistoryResponse DTO.
func ToPaymentHistoryResponse(output *payment.PaymentHistoryOutput) PaymentHistoryResponse {
	return PaymentHistoryResponse{
		ResidentID:  output.ResidentID.String(),
		Payments:    toPaymentResponses(output.Payments),
		TotalAmount: Money(output.TotalAmount),
	}
}

// ToPendingPaymentsResponse converts a FindPendingPaymentsOutput to a PendingPaymentsResponse DTO.
func ToPendingPaymentsResponse(output *billing.FindPendingPaymentsOutput) PendingPaymentsResponse {
	residents := make([]PendingPaymentResponse, len(output.Entries))
	for i, e := range output.Entries {
		residents[i] = PendingPaymentResponse{
			ResidentID:     e.ResidentID.String(),
			ResidentName:   e.ResidentName,
			Email:          e.Email,
			RoomNumber:     e.RoomNumber,
			ExpectedAmount: Money(e.ExpectedAmount),
			ForMonth:       Period(e.ForMonth),
		}
	}
	return PendingPaymentsResponse{
		Period:        Period(output.Period),
		Residents:     residents,
		Count:         len(residents),
		TotalExpected: Money(output.TotalExpected),
	}
}
