package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// ResidentFilter narrows resident listings.
type ResidentFilter struct {
	ActiveOnly *bool
	Search     string // Matches name, identity number or room number
}

// ResidentRepository defines the interface for resident persistence operations.
type ResidentRepository interface {
	Create(ctx context.Context, resident *entity.Resident) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resident, error)
	ExistsByIdentityNumber(ctx context.Context, identityNumber string) (bool, error)
	List(ctx context.Context, filter ResidentFilter) ([]*entity.Resident, error)
	Update(ctx context.Context, resident *entity.Resident) error
}
