package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
)

// ListExpensesInput represents the date filters for an expense listing.
// Both dates are inclusive calendar days; nil leaves that side open.
type ListExpensesInput struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// ListExpensesOutput represents the output of an expense listing.
type ListExpensesOutput struct {
	Expenses    []*ExpenseOutput
	Total       int
	TotalAmount decimal.Decimal
}

// ListExpensesUseCase lists expenses.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute returns expenses in the window, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	var end *time.Time
	if input.EndDate != nil {
		u := input.EndDate.UTC()
		next := time.Date(u.Year(), u.Month(), u.Day()+1, 0, 0, 0, 0, time.UTC)
		end = &next
	}

	expenses, err := uc.expenseRepo.List(ctx, input.StartDate, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	outputs := make([]*ExpenseOutput, len(expenses))
	total := decimal.Zero
	for i, e := range expenses {
		outputs[i] = toOutput(e)
		total = total.Add(e.Amount)
	}

	return &ListExpensesOutput{
		Expenses:    outputs,
		Total:       len(outputs),
		TotalAmount: total,
	}, nil
}
