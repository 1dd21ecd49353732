package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

func TestGetDashboard(t *testing.T) {
	june := entity.BillingPeriod{Year: 2024, Month: time.June}

	a := entity.NewResident("A", "1", "", "", "101", day(2024, time.January, 1), decimal.NewFromInt(1000), "")
	b := entity.NewResident("B", "2", "", "", "101", day(2024, time.January, 1), decimal.NewFromInt(800), "")
	c := entity.NewResident("C", "3", "", "", "102", day(2024, time.January, 1), decimal.NewFromInt(1200), "")
	gone := entity.NewResident("D", "4", "", "", "103", day(2024, time.January, 1), decimal.NewFromInt(900), "")
	gone.CheckOut(day(2024, time.May, 1))

	payment := entity.NewPayment(a.ID, decimal.NewFromInt(1000), day(2024, time.June, 2), june, entity.PaymentMethodCash, "", "", "test")
	early := entity.NewPayment(c.ID, decimal.NewFromInt(1200), day(2024, time.June, 20), june.Next(), entity.PaymentMethodCash, "", "", "test")

	ledger := &fakeLedger{
		residents: []*entity.Resident{a, b, c, gone},
		payments:  []*entity.Payment{payment, early},
	}
	clock := fixedClock{now: time.Date(2024, time.June, 14, 12, 0, 0, 0, time.UTC)}

	output, err := NewGetDashboardUseCase(ledger, clock, 10).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Period != june {
		t.Errorf("expected period %s, got %s", june, output.Period)
	}
	if output.TotalResidents != 4 || output.ActiveResidents != 3 {
		t.Errorf("expected 4 total / 3 active, got %d / %d", output.TotalResidents, output.ActiveResidents)
	}
	if output.OccupiedRooms != 2 || output.VacantRooms != 8 {
		t.Errorf("expected 2 occupied / 8 vacant, got %d / %d", output.OccupiedRooms, output.VacantRooms)
	}
	if output.OccupancyRate != 20 {
		t.Errorf("expected occupancy 20, got %v", output.OccupancyRate)
	}
	if !output.CurrentPeriodRevenue.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected current revenue 1000, got %s", output.CurrentPeriodRevenue)
	}
	if output.PendingCount != 2 || !output.OutstandingAmount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected 2 pending totalling 2000, got %d totalling %s", output.PendingCount, output.OutstandingAmount)
	}
	if !output.ExpectedRevenue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected expected revenue 3000, got %s", output.ExpectedRevenue)
	}
	if ledger.sessions != 1 {
		t.Errorf("expected one session, got %d", ledger.sessions)
	}
}

func TestGetDashboard_DefaultRooms(t *testing.T) {
	uc := NewGetDashboardUseCase(&fakeLedger{}, fixedClock{now: time.Now()}, 0)

	output, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.TotalRooms != DefaultTotalRooms || output.VacantRooms != DefaultTotalRooms {
		t.Errorf("expected %d rooms all vacant, got %d / %d", DefaultTotalRooms, output.TotalRooms, output.VacantRooms)
	}
}
