package resident

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// CheckoutResidentInput represents the input for checking a resident out.
type CheckoutResidentInput struct {
	ID           uuid.UUID
	CheckOutDate time.Time // Zero means today
	Actor        string
	IPAddress    string
}

// CheckoutResidentOutput represents the output of a checkout.
type CheckoutResidentOutput struct {
	Resident *ResidentOutput
}

// CheckoutResidentUseCase soft-deletes a resident. The record and its
// payments are kept for reporting.
type CheckoutResidentUseCase struct {
	residentRepo adapter.ResidentRepository
	auditRepo    adapter.AuditLogRepository
	clock        adapter.Clock
}

// NewCheckoutResidentUseCase creates a new CheckoutResidentUseCase instance.
func NewCheckoutResidentUseCase(
	residentRepo adapter.ResidentRepository,
	auditRepo adapter.AuditLogRepository,
	clock adapter.Clock,
) *CheckoutResidentUseCase {
	return &CheckoutResidentUseCase{
		residentRepo: residentRepo,
		auditRepo:    auditRepo,
		clock:        clock,
	}
}

// Execute marks the resident inactive and records the departure date.
func (uc *CheckoutResidentUseCase) Execute(ctx context.Context, input CheckoutResidentInput) (*CheckoutResidentOutput, error) {
	resident, err := uc.residentRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if !resident.IsActive {
		return nil, domainerror.NewResidentError(
			domainerror.ErrCodeResidentAlreadyCheckedOut,
			"resident already checked out",
			domainerror.ErrResidentAlreadyCheckedOut,
		)
	}

	checkOut := input.CheckOutDate
	if checkOut.IsZero() {
		now := uc.clock.Now().UTC()
		checkOut = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	resident.CheckOut(checkOut)

	if err := uc.residentRepo.Update(ctx, resident); err != nil {
		return nil, fmt.Errorf("failed to update resident: %w", err)
	}

	entry := entity.NewAuditLog(
		input.Actor,
		entity.AuditActionCheckout,
		auditEntity,
		resident.ID.String(),
		fmt.Sprintf("checked out of room %s on %s", resident.RoomNumber, checkOut.Format(time.DateOnly)),
	)
	entry.IPAddress = input.IPAddress
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "resident_id", resident.ID, "error", err)
	}

	return &CheckoutResidentOutput{Resident: toOutput(resident)}, nil
}
