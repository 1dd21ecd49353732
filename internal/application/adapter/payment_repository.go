package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// PaymentFilter narrows payment listings. Zero values are ignored.
type PaymentFilter struct {
	StartDate *time.Time // Inclusive
	EndDate   *time.Time // Exclusive
	ForMonth  *entity.BillingPeriod
}

// PaymentRepository defines the interface for payment persistence operations.
// There is no update path: payments are immutable.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]*entity.Payment, error)
	ListByResident(ctx context.Context, residentID uuid.UUID) ([]*entity.Payment, error)
}
