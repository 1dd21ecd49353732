package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/application/usecase/billing"
	"github.com/residence-hub/backend/internal/domain/entity"
)

// DefaultTotalRooms is the facility capacity when none is configured.
const DefaultTotalRooms = 50

// GetDashboardOutput is the occupancy and collection overview for the current period.
type GetDashboardOutput struct {
	Period               entity.BillingPeriod
	TotalResidents       int64
	ActiveResidents      int64
	TotalRooms           int
	OccupiedRooms        int64
	VacantRooms          int64
	OccupancyRate        float64
	ExpectedRevenue      decimal.Decimal
	CurrentPeriodRevenue decimal.Decimal
	PendingCount         int
	OutstandingAmount    decimal.Decimal
}

// GetDashboardUseCase builds the staff dashboard overview.
type GetDashboardUseCase struct {
	store      adapter.LedgerStore
	clock      adapter.Clock
	totalRooms int
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(store adapter.LedgerStore, clock adapter.Clock, totalRooms int) *GetDashboardUseCase {
	if totalRooms <= 0 {
		totalRooms = DefaultTotalRooms
	}
	return &GetDashboardUseCase{
		store:      store,
		clock:      clock,
		totalRooms: totalRooms,
	}
}

// Execute reads counts, collections and the pending set from one session.
func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*GetDashboardOutput, error) {
	period := entity.ResolvePeriod(uc.clock.Now().UTC())

	session, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger session: %w", err)
	}
	defer session.Close()

	counts, err := session.CountResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count residents: %w", err)
	}

	payments, err := session.ListPaymentsForPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", period, err)
	}

	pending, err := billing.FindPending(ctx, session, period)
	if err != nil {
		return nil, err
	}

	residents, err := session.ListActiveResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active residents: %w", err)
	}
	expected := decimal.Zero
	for _, r := range residents {
		expected = expected.Add(r.MonthlyRent)
	}

	vacant := int64(uc.totalRooms) - counts.OccupiedRooms
	if vacant < 0 {
		vacant = 0
	}

	return &GetDashboardOutput{
		Period:               period,
		TotalResidents:       counts.Total,
		ActiveResidents:      counts.Active,
		TotalRooms:           uc.totalRooms,
		OccupiedRooms:        counts.OccupiedRooms,
		VacantRooms:          vacant,
		OccupancyRate:        percentage(decimal.NewFromInt(counts.OccupiedRooms), decimal.NewFromInt(int64(uc.totalRooms))),
		ExpectedRevenue:      expected,
		CurrentPeriodRevenue: sumPayments(payments),
		PendingCount:         len(pending.Entries),
		OutstandingAmount:    pending.TotalExpected,
	}, nil
}
