package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
	domainerror "github.com/residence-hub/backend/internal/domain/error"
)

// MonthlyPoint holds one month of a revenue/expense series.
// Start and End are the inclusive days actually covered, which may be
// narrower than the calendar month at the edges of a range.
type MonthlyPoint struct {
	Period   entity.BillingPeriod
	Label    string
	Start    time.Time
	End      time.Time
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}

// GetMonthlySeriesInput represents the input for the trailing monthly series.
type GetMonthlySeriesInput struct {
	MonthsBack int // 0 means DefaultMonthsBack
}

// SeriesOutput represents a month-by-month series, oldest first.
type SeriesOutput struct {
	Points []MonthlyPoint
}

// GetMonthlySeriesUseCase builds the trailing series ending with the current month.
type GetMonthlySeriesUseCase struct {
	store adapter.LedgerStore
	clock adapter.Clock
}

// NewGetMonthlySeriesUseCase creates a new GetMonthlySeriesUseCase instance.
func NewGetMonthlySeriesUseCase(store adapter.LedgerStore, clock adapter.Clock) *GetMonthlySeriesUseCase {
	return &GetMonthlySeriesUseCase{
		store: store,
		clock: clock,
	}
}

// Execute returns the last MonthsBack calendar months including the current one.
func (uc *GetMonthlySeriesUseCase) Execute(ctx context.Context, input GetMonthlySeriesInput) (*SeriesOutput, error) {
	months := input.MonthsBack
	if months == 0 {
		months = DefaultMonthsBack
	}
	if months < 1 || months > MaxMonthsBack {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidMonthsBack,
			fmt.Sprintf("months must be between 1 and %d", MaxMonthsBack),
			domainerror.ErrInvalidMonthsBack,
		)
	}

	current := entity.ResolvePeriod(uc.clock.Now().UTC())
	first := current.AddMonths(-(months - 1))
	r := DateRange{Start: first.Start(), End: MonthRange(current).End}

	session, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger session: %w", err)
	}
	defer session.Close()

	points, err := BuildSeries(ctx, session, r)
	if err != nil {
		return nil, err
	}

	return &SeriesOutput{Points: points}, nil
}

// GetRangeSeriesInput represents the input for a series over an explicit range.
type GetRangeSeriesInput struct {
	StartDate time.Time
	EndDate   time.Time
}

// GetRangeSeriesUseCase walks an explicit range one calendar month at a time.
type GetRangeSeriesUseCase struct {
	store adapter.LedgerStore
}

// NewGetRangeSeriesUseCase creates a new GetRangeSeriesUseCase instance.
func NewGetRangeSeriesUseCase(store adapter.LedgerStore) *GetRangeSeriesUseCase {
	return &GetRangeSeriesUseCase{
		store: store,
	}
}

// Execute returns one point per month touched by the range. A start after
// the end yields an empty series.
func (uc *GetRangeSeriesUseCase) Execute(ctx context.Context, input GetRangeSeriesInput) (*SeriesOutput, error) {
	r := NewDateRange(input.StartDate, input.EndDate)
	if r.IsEmpty() {
		return &SeriesOutput{Points: []MonthlyPoint{}}, nil
	}

	session, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger session: %w", err)
	}
	defer session.Close()

	points, err := BuildSeries(ctx, session, r)
	if err != nil {
		return nil, err
	}

	return &SeriesOutput{Points: points}, nil
}

// BuildSeries buckets payments and expenses in the range by calendar month.
// Boundary months only count the days inside the range.
func BuildSeries(ctx context.Context, session adapter.LedgerSession, r DateRange) ([]MonthlyPoint, error) {
	periods := GeneratePeriodSeries(r)
	if len(periods) == 0 {
		return []MonthlyPoint{}, nil
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

	revenue := make(map[entity.BillingPeriod]decimal.Decimal, len(periods))
	for _, p := range payments {
		key := entity.ResolvePeriod(p.PaymentDate.UTC())
		revenue[key] = revenue[key].Add(p.Amount)
	}

	costs := make(map[entity.BillingPeriod]decimal.Decimal, len(periods))
	for _, e := range expenses {
		key := entity.ResolvePeriod(e.ExpenseDate.UTC())
		costs[key] = costs[key].Add(e.Amount)
	}

	points := make([]MonthlyPoint, 0, len(periods))
	for _, period := range periods {
		month := MonthRange(period)
		if month.Start.Before(r.Start) {
			month.Start = r.Start
		}
		if month.End.After(r.End) {
			month.End = r.End
		}

		points = append(points, MonthlyPoint{
			Period:   period,
			Label:    PeriodLabel(period),
			Start:    month.Start,
			End:      month.End,
			Revenue:  revenue[period],
			Expenses: costs[period],
			Net:      revenue[period].Sub(costs[period]),
		})
	}

	return points, nil
}
