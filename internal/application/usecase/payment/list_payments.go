package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
)

// ListPaymentsInput represents the filters for a payment listing.
// Dates are inclusive calendar days.
type ListPaymentsInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	ForMonth  *entity.BillingPeriod
}

// ListPaymentsOutput represents the output of a payment listing.
type ListPaymentsOutput struct {
	Payments    []*PaymentOutput
	Total       int
	TotalAmount decimal.Decimal
}

// ListPaymentsUseCase lists payments.
type ListPaymentsUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(paymentRepo adapter.PaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute returns matching payments, newest first.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	filter := adapter.PaymentFilter{
		StartDate: input.StartDate,
		ForMonth:  input.ForMonth,
	}
	if input.EndDate != nil {
		end := dayAfter(*input.EndDate)
		filter.EndDate = &end
	}

	payments, err := uc.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &ListPaymentsOutput{
		Payments:    toOutputs(payments),
		Total:       len(payments),
		TotalAmount: sum(payments),
	}, nil
}

// dayAfter returns midnight UTC of the day following t.
func dayAfter(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()+1, 0, 0, 0, 0, time.UTC)
}
