// Package expense contains operating expense use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// MaxCategoryLength is the maximum allowed length for expense categories.
const MaxCategoryLength = 100

// ExpenseOutput represents an expense in use case outputs.
type ExpenseOutput struct {
	ID          uuid.UUID
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	RecordedBy  string
	CreatedAt   time.Time
}

// CreateExpenseInput represents the input for recording an expense.
type CreateExpenseInput struct {
	Category    string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Actor       string
	IPAddress   string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase records operating expenses.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	auditRepo   adapter.AuditLogRepository
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, auditRepo adapter.AuditLogRepository) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		auditRepo:   auditRepo,
	}
}

// Execute validates and stores the expense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseCategory,
			"category is required",
			domainerror.ErrMissingExpenseCategory,
		)
	}
	if len(category) > MaxCategoryLength {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseCategory,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			nil,
		)
	}

	if !input.Amount.IsPositive() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidExpenseAmount,
		)
	}

	if input.ExpenseDate.IsZero() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"expense date is required",
			nil,
		)
	}

	expense := entity.NewExpense(category, input.Description, input.Amount, input.ExpenseDate, input.Actor)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	entry := entity.NewAuditLog(
		input.Actor,
		entity.AuditActionCreate,
		"expense",
		expense.ID.String(),
		fmt.Sprintf("recorded %s %s", expense.Category, expense.Amount.StringFixed(2)),
	)
	entry.IPAddress = input.IPAddress
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit log", "expense_id", expense.ID, "error", err)
	}

	return &CreateExpenseOutput{Expense: toOutput(expense)}, nil
}

func toOutput(e *entity.Expense) *ExpenseOutput {
	return &ExpenseOutput{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		RecordedBy:  e.RecordedBy,
		CreatedAt:   e.CreatedAt,
	}
}
