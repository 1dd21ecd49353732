package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/adapter"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// GetPaymentInput represents the input for a payment lookup.
type GetPaymentInput struct {
	ID uuid.UUID
}

// GetPaymentOutput represents the output of a payment lookup.
type GetPaymentOutput struct {
	Payment *PaymentOutput
}

// GetPaymentUseCase retrieves a single payment.
type GetPaymentUseCase struct {
	paymentRepo adapter.PaymentRepository
}

// NewGetPaymentUseCase creates a new GetPaymentUseCase instance.
func NewGetPaymentUseCase(paymentRepo adapter.PaymentRepository) *GetPaymentUseCase {
	return &GetPaymentUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute returns the payment.
func (uc *GetPaymentUseCase) Execute(ctx context.Context, input GetPaymentInput) (*GetPaymentOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPaymentNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentNotFound,
				"payment not found",
				domainerror.ErrPaymentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &GetPaymentOutput{Payment: toOutput(payment)}, nil
}
