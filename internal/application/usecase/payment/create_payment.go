package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// CreatePaymentInput represents the input for recording a payment.
type CreatePaymentInput struct {
	ResidentID         uuid.UUID
	Amount             decimal.Decimal
	PaymentDate        time.Time
	ForMonth           string // "YYYY-MM"; empty means the period of PaymentDate
	PaymentMethod      entity.PaymentMethod
	ProcessorReference string
	Notes              string
	Actor              string
	IPAddress          string
}

// CreatePaymentOutput represents the output of payment creation.
type CreatePaymentOutput struct {
	Payment *PaymentOutput
}

// CreatePaymentUseCase records rent payments.
type CreatePaymentUseCase struct {
	paymentRepo  adapter.PaymentRepository
	residentRepo adapter.ResidentRepository
	auditRepo    adapter.AuditLogRepository
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase instance.
func NewCreatePaymentUseCase(
	paymentRepo adapter.PaymentRepository,
	residentRepo adapter.ResidentRepository,
	auditRepo adapter.AuditLogRepository,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo:  paymentRepo,
		residentRepo: residentRepo,
		auditRepo:    auditRepo,
	}
}

// Execute validates and stores the payment.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	if input.ResidentID == uuid.Nil {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeMissingPaymentFields,
			"resident_id is required",
			nil,
		)
	}

	if input.PaymentDate.IsZero() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentDate,
			"payment date is required",
			nil,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidPaymentAmount,
		)
	}

	method := input.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodeInvalidPaymentMethod,
			fmt.Sprintf("unknown payment method %q", method),
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	period := entity.ResolvePeriod(input.PaymentDate)
	if forMonth := strings.TrimSpace(input.ForMonth); forMonth != "" {
		parsed, err := entity.ParseBillingPeriod(forMonth)
		if err != nil {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodeInvalidBillingPeriod,
				"for_month must be in YYYY-MM format",
				domainerror.ErrInvalidBillingPeriod,
			)
		}
		period = parsed
	}

	resident, err := uc.residentRepo.FindByID(ctx, input.ResidentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrResidentNotFound) {
			return nil, domainerror.NewPaymentError(
				domainerror.ErrCodePaymentResidentNotFound,
				"resident not found",
				domainerror.ErrPaymentResidentNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find resident: %w", err)
	}
	if !resident.IsActive {
		return nil, domainerror.NewPaymentError(
			domainerror.ErrCodePaymentResidentInactive,
			"cannot record a payment for a checked-out resident",
			domainerror.ErrPaymentResidentInactive,
		)
	}

	payment := entity.NewPayment(
		resident.ID,
		input.Amount,
		input.PaymentDate,
		period,
		method,
		input.ProcessorReference,
		input.Notes,
		input.Actor,
	)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	entry := entity.NewAuditLog(
		input.Actor,
		entity.AuditActionCreate,
		"payment",
		payment.ID.String(),
		fmt.Sprintf("recorded %s from %s for %s", payment.Amount.StringFixed(2), resident.FullName, period),
	)
	entry.IPAddress = input.IPAddress
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "payment_id", payment.ID, "error", err)
	}

	return &CreatePaymentOutput{Payment: toOutput(payment)}, nil
}
