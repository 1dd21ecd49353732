package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
)

// GetRevenueAnalyticsInput represents the input for revenue analytics.
type GetRevenueAnalyticsInput struct {
	StartDate time.Time
	EndDate   time.Time
}

// GetRevenueAnalyticsOutput compares a window's revenue with the window before it.
type GetRevenueAnalyticsOutput struct {
	Range                 DateRange
	PreviousRange         DateRange
	TotalRevenue          decimal.Decimal
	PreviousRevenue       decimal.Decimal
	GrowthPercentage      float64
	AverageMonthlyRevenue decimal.Decimal
	PaymentCount          int
	Months                []MonthlyPoint
}

// GetRevenueAnalyticsUseCase reports revenue growth over a window.
type GetRevenueAnalyticsUseCase struct {
	store adapter.LedgerStore
}

// NewGetRevenueAnalyticsUseCase creates a new GetRevenueAnalyticsUseCase instance.
func NewGetRevenueAnalyticsUseCase(store adapter.LedgerStore) *GetRevenueAnalyticsUseCase {
	return &GetRevenueAnalyticsUseCase{
		store: store,
	}
}

// Execute computes totals for the window and for the equally long window
// ending the day before it. Growth is 0 when the previous window had no revenue.
func (uc *GetRevenueAnalyticsUseCase) Execute(ctx context.Context, input GetRevenueAnalyticsInput) (*GetRevenueAnalyticsOutput, error) {
	r := NewDateRange(input.StartDate, input.EndDate)
	output := &GetRevenueAnalyticsOutput{
		Range:                 r,
		TotalRevenue:          decimal.Zero,
		PreviousRevenue:       decimal.Zero,
		AverageMonthlyRevenue: decimal.Zero,
		Months:                []MonthlyPoint{},
	}
	if r.IsEmpty() {
		return output, nil
	}

	prevEnd := r.Start.AddDate(0, 0, -1)
	output.PreviousRange = DateRange{Start: prevEnd.AddDate(0, 0, -(r.Days() - 1)), End: prevEnd}

	session, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger session: %w", err)
	}
	defer session.Close()

	start, end := r.Bounds()
	payments, err := session.ListPaymentsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	prevStart, prevEndExclusive := output.PreviousRange.Bounds()
	previous, err := session.ListPaymentsInRange(ctx, prevStart, prevEndExclusive)
	if err != nil {
		return nil, fmt.Errorf("failed to list previous payments: %w", err)
	}

	months, err := BuildSeries(ctx, session, r)
	if err != nil {
		return nil, err
	}

	output.TotalRevenue = sumPayments(payments)
	output.PreviousRevenue = sumPayments(previous)
	output.PaymentCount = len(payments)
	output.Months = months
	output.GrowthPercentage = percentage(output.TotalRevenue.Sub(output.PreviousRevenue), output.PreviousRevenue)
	if len(months) > 0 {
		output.AverageMonthlyRevenue = output.TotalRevenue.Div(decimal.NewFromInt(int64(len(months)))).Round(2)
	}

	return output, nil
}
