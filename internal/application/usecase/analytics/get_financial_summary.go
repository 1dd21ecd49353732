package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
)

// CategoryAmount is one slice of a category breakdown.
type CategoryAmount struct {
	Category   string
	Amount     decimal.Decimal
	Percentage float64
}

// FinancialSummary aggregates revenue and expenses for a date range.
type FinancialSummary struct {
	Range              DateRange
	TotalRevenue       decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetProfit          decimal.Decimal
	ProfitMargin       float64
	PaymentCount       int
	ExpenseCount       int
	RevenueByCategory  []CategoryAmount
	ExpensesByCategory []CategoryAmount
}

// GetFinancialSummaryInput represents the input for the summary.
// Both dates are inclusive calendar days.
type GetFinancialSummaryInput struct {
	StartDate time.Time
	EndDate   time.Time
}

// GetFinancialSummaryOutput represents the output of the summary.
type GetFinancialSummaryOutput struct {
	Summary *FinancialSummary
}

// GetFinancialSummaryUseCase summarizes revenue and expenses over a window.
type GetFinancialSummaryUseCase struct {
	store adapter.LedgerStore
}

// NewGetFinancialSummaryUseCase creates a new GetFinancialSummaryUseCase instance.
func NewGetFinancialSummaryUseCase(store adapter.LedgerStore) *GetFinancialSummaryUseCase {
	return &GetFinancialSummaryUseCase{
		store: store,
	}
}

// Execute computes the summary. A start after the end yields zero totals.
func (uc *GetFinancialSummaryUseCase) Execute(ctx context.Context, input GetFinancialSummaryInput) (*GetFinancialSummaryOutput, error) {
	r := NewDateRange(input.StartDate, input.EndDate)
	if r.IsEmpty() {
		return &GetFinancialSummaryOutput{Summary: emptySummary(r)}, nil
	}

	session, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger session: %w", err)
	}
	defer session.Close()

	summary, err := Summarize(ctx, session, r)
	if err != nil {
		return nil, err
	}

	return &GetFinancialSummaryOutput{Summary: summary}, nil
}

// Summarize computes a financial summary inside an existing session.
func Summarize(ctx context.Context, session adapter.LedgerSession, r DateRange) (*FinancialSummary, error) {
	if r.IsEmpty() {
		return emptySummary(r), nil
	}

	start, end := r.Bounds()

	payments, err := session.ListPaymentsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	expenses, err := session.ListExpensesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	revenue := sumPayments(payments)
	expenseTotal := sumExpenses(expenses)
	net := revenue.Sub(expenseTotal)

	summary := &FinancialSummary{
		Range:              r,
		TotalRevenue:       revenue,
		TotalExpenses:      expenseTotal,
		NetProfit:          net,
		ProfitMargin:       percentage(net, revenue),
		PaymentCount:       len(payments),
		ExpenseCount:       len(expenses),
		RevenueByCategory:  []CategoryAmount{},
		ExpensesByCategory: []CategoryAmount{},
	}

	if revenue.IsPositive() {
		summary.RevenueByCategory = append(summary.RevenueByCategory, CategoryAmount{
			Category:   RevenueCategoryRent,
			Amount:     revenue,
			Percentage: 100,
		})
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	for category, amount := range byCategory {
		summary.ExpensesByCategory = append(summary.ExpensesByCategory, CategoryAmount{
			Category:   category,
			Amount:     amount,
			Percentage: percentage(amount, expenseTotal),
		})
	}
	sort.Slice(summary.ExpensesByCategory, func(i, j int) bool {
		a, b := summary.ExpensesByCategory[i], summary.ExpensesByCategory[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})

	return summary, nil
}

func emptySummary(r DateRange) *FinancialSummary {
	return &FinancialSummary{
		Range:              r,
		TotalRevenue:       decimal.Zero,
		TotalExpenses:      decimal.Zero,
		NetProfit:          decimal.Zero,
		RevenueByCategory:  []CategoryAmount{},
		ExpensesByCategory: []CategoryAmount{},
	}
}
