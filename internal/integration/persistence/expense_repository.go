package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create inserts a new expense.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense)).Error
}

// List retrieves expenses in [start, end), newest first.
func (r *expenseRepository) List(ctx context.Context, start, end *time.Time) ([]*entity.Expense, error) {
	query := r.db.WithContext(ctx).Model(&model.ExpenseModel{})

	if start != nil {
		query = query.Where("expense_date >= ?", start.UTC())
	}
	if end != nil {
		query = query.Where("expense_date < ?", end.UTC())
	}

	var models []model.ExpenseModel
	if err := query.Order("expense_date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return expensesToEntities(models), nil
}
