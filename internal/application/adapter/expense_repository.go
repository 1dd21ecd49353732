package adapter

import (
	"context"
	"time"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	// List returns expenses with ExpenseDate in [start, end). Nil bounds are open.
	List(ctx context.Context, start, end *time.Time) ([]*entity.Expense, error)
}
