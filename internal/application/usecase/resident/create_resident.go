package resident

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// CreateResidentInput represents the input for admitting a resident.
type CreateResidentInput struct {
	FullName       string
	IdentityNumber string
	Phone          string
	Email          string
	RoomNumber     string
	CheckInDate    time.Time
	MonthlyRent    decimal.Decimal
	Notes          string
	Actor          string
	IPAddress      string
}

// CreateResidentOutput represents the output of resident creation.
type CreateResidentOutput struct {
	Resident *ResidentOutput
}

// CreateResidentUseCase handles resident admission.
type CreateResidentUseCase struct {
	residentRepo adapter.ResidentRepository
	auditRepo    adapter.AuditLogRepository
	notifier     adapter.WelcomeNotifier
}

// NewCreateResidentUseCase creates a new CreateResidentUseCase instance.
func NewCreateResidentUseCase(
	residentRepo adapter.ResidentRepository,
	auditRepo adapter.AuditLogRepository,
	notifier adapter.WelcomeNotifier,
) *CreateResidentUseCase {
	return &CreateResidentUseCase{
		residentRepo: residentRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
	}
}

// Execute validates and stores a new active resident.
func (uc *CreateResidentUseCase) Execute(ctx context.Context, input CreateResidentInput) (*CreateResidentOutput, error) {
	if strings.TrimSpace(input.FullName) == "" ||
		strings.TrimSpace(input.IdentityNumber) == "" ||
		strings.TrimSpace(input.RoomNumber) == "" {
		return nil, domainerror.NewResidentError(
			domainerror.ErrCodeMissingResidentFields,
			"full name, identity number and room number are required",
			domainerror.ErrMissingResidentFields,
		)
	}

	if input.CheckInDate.IsZero() {
		return nil, domainerror.NewResidentError(
			domainerror.ErrCodeInvalidCheckInDate,
			"check-in date is required",
			domainerror.ErrMissingResidentFields,
		)
	}

	if input.MonthlyRent.IsNegative() {
		return nil, domainerror.NewResidentError(
			domainerror.ErrCodeInvalidMonthlyRent,
			"monthly rent must not be negative",
			domainerror.ErrInvalidMonthlyRent,
		)
	}

	exists, err := uc.residentRepo.ExistsByIdentityNumber(ctx, input.IdentityNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check identity number: %w", err)
	}
	if exists {
		return nil, domainerror.NewResidentError(
			domainerror.ErrCodeDuplicateIdentityNumber,
			"a resident with this identity number already exists",
			domainerror.ErrDuplicateIdentityNumber,
		)
	}

	resident := entity.NewResident(
		input.FullName,
		input.IdentityNumber,
		input.Phone,
		input.Email,
		input.RoomNumber,
		input.CheckInDate,
		input.MonthlyRent,
		input.Notes,
	)

	if err := uc.residentRepo.Create(ctx, resident); err != nil {
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}

	entry := entity.NewAuditLog(
		input.Actor,
		entity.AuditActionCreate,
		auditEntity,
		resident.ID.String(),
		fmt.Sprintf("admitted %s to room %s", resident.FullName, resident.RoomNumber),
	)
	entry.IPAddress = input.IPAddress
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "resident_id", resident.ID, "error", err)
	}

	if resident.HasContactAddress() && uc.notifier != nil {
		err := uc.notifier.SendWelcome(ctx, adapter.WelcomeInput{
			ResidentID:   resident.ID,
			Email:        resident.Email,
			ResidentName: resident.FullName,
			RoomNumber:   resident.RoomNumber,
			MonthlyRent:  resident.MonthlyRent,
			CheckInDate:  resident.CheckInDate,
		})
		if err != nil {
			// The resident is stored; only the greeting is lost.
			slog.Warn("Failed to queue welcome email", "resident_id", resident.ID, "error", err)
		}
	}

	return &CreateResidentOutput{Resident: toOutput(resident)}, nil
}
