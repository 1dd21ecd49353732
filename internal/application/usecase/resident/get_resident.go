package resident

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/application/adapter"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// GetResidentInput represents the input for a resident lookup.
type GetResidentInput struct {
	ID uuid.UUID
}

// GetResidentOutput represents the output of a resident lookup.
type GetResidentOutput struct {
	Resident *ResidentOutput
}

// GetResidentUseCase retrieves a single resident.
type GetResidentUseCase struct {
	residentRepo adapter.ResidentRepository
}

// NewGetResidentUseCase creates a new GetResidentUseCase instance.
func NewGetResidentUseCase(residentRepo adapter.ResidentRepository) *GetResidentUseCase {
	return &GetResidentUseCase{
		residentRepo: residentRepo,
	}
}

// Execute returns the resident, active or not.
func (uc *GetResidentUseCase) Execute(ctx context.Context, input GetResidentInput) (*GetResidentOutput, error) {
	resident, err := uc.residentRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &GetResidentOutput{Resident: toOutput(resident)}, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, domainerror.ErrResidentNotFound) {
		return domainerror.NewResidentError(
			domainerror.ErrCodeResidentNotFound,
			"resident not found",
			domainerror.ErrResidentNotFound,
		)
	}
	return fmt.Errorf("failed to find resident: %w", err)
}
