package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// PaymentHistoryInput represents the input for a resident's history.
type PaymentHistoryInput struct {
	ResidentID uuid.UUID
}

// PaymentHistoryOutput lists a resident's payments, newest first.
type PaymentHistoryOutput struct {
	ResidentID  uuid.UUID
	Payments    []*PaymentOutput
	TotalAmount decimal.Decimal
}

// PaymentHistoryUseCase retrieves the payments of one resident.
type PaymentHistoryUseCase struct {
	paymentRepo  adapter.PaymentRepository
	residentRepo adapter.ResidentRepository
}

// NewPaymentHistoryUseCase creates a new PaymentHistoryUseCase instance.
func NewPaymentHistoryUseCase(paymentRepo adapter.PaymentRepository, residentRepo adapter.ResidentRepository) *PaymentHistoryUseCase {
	return &PaymentHistoryUseCase{
		paymentRepo:  paymentRepo,
		residentRepo: residentRepo,
	}
}

// Execute returns the history. Checked-out residents keep theirs.
func (uc *PaymentHistoryUseCase) Execute(ctx context.Context, input PaymentHistoryInput) (*PaymentHistoryOutput, error) {
	if _, err := uc.residentRepo.FindByID(ctx, input.ResidentID); err != nil {
		if errors.Is(err, domainerror.ErrResidentNotFound) {
			return nil, domainerror.NewResidentError(
				domainerror.ErrCodeResidentNotFound,
				"resident not found",
				domainerror.ErrResidentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find resident: %w", err)
	}

	payments, err := uc.paymentRepo.ListByResident(ctx, input.ResidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment history: %w", err)
	}

	return &PaymentHistoryOutput{
		ResidentID:  input.ResidentID,
		Payments:    toOutputs(payments),
		TotalAmount: sum(payments),
	}, nil
}
