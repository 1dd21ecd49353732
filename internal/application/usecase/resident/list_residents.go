package resident

import (
	"context"
	"fmt"

	"github.com/residence-hub/backend/internal/application/adapter"
)

// ListResidentsInput represents the filters for a resident listing.
type ListResidentsInput struct {
	ActiveOnly *bool
	Search     string
}

// ListResidentsOutput represents the output of a resident listing.
type ListResidentsOutput struct {
	Residents []*ResidentOutput
	Total     int
}

// ListResidentsUseCase lists residents.
type ListResidentsUseCase struct {
	residentRepo adapter.ResidentRepository
}

// NewListResidentsUseCase creates a new ListResidentsUseCase instance.
func NewListResidentsUseCase(residentRepo adapter.ResidentRepository) *ListResidentsUseCase {
	return &ListResidentsUseCase{
		residentRepo: residentRepo,
	}
}

// Execute returns residents matching the filters, ordered by name.
func (uc *ListResidentsUseCase) Execute(ctx context.Context, input ListResidentsInput) (*ListResidentsOutput, error) {
	residents, err := uc.residentRepo.List(ctx, adapter.ResidentFilter{
		ActiveOnly: input.ActiveOnly,
		Search:     input.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}

	outputs := make([]*ResidentOutput, len(residents))
	for i, r := range residents {
		outputs[i] = toOutput(r)
	}

	return &ListResidentsOutput{
		Residents: outputs,
		Total:     len(outputs),
	}, nil
}
