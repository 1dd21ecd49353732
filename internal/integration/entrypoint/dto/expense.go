package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/usecase/expense"
)

// CreateExpenseRequest represents the request body for recording an expense.
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,max=100"`
	Description string          `json:"description,omitempty" binding:"omitempty,max=1000"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date" binding:"required"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	ExpenseDate string    `json:"expense_date"`
	RecordedBy  string    `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseListResponse represents an expense listing.
type ExpenseListResponse struct {
	Expenses    []ExpenseResponse `json:"expenses"`
	Total       int               `json:"total"`
	TotalAmount string            `json:"total_amount"`
}

// ToExpenseResponse converts an ExpenseOutput to an ExpenseResponse DTO.
func ToExpenseResponse(e *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Category:    e.Category,
		Description: e.Description,
		Amount:      Money(e.Amount),
		ExpenseDate: Date(e.ExpenseDate),
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseListResponse converts a ListExpensesOutput to an ExpenseListResponse DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(output.Expenses))
	for i, e := range output.Expenses {
		expenses[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Expenses:    expenses,
		Total:       output.Total,
		TotalAmount: Money(output.TotalAmount),
	}
}
