package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is an operating cost of the facility.
type Expense struct {
	ID          uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	RecordedBy  string
	CreatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(category, description string, amount decimal.Decimal, expenseDate time.Time, recordedBy string) *Expense {
	return &Expense{
		ID:          uuid.New(),
		Category:    strings.TrimSpace(category),
		Description: description,
		Amount:      amount,
		ExpenseDate: expenseDate.UTC(),
		RecordedBy:  recordedBy,
		CreatedAt:   time.Now().UTC(),
	}
}
