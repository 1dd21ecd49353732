package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

type fakeLedger struct {
	residents  []*entity.Resident
	payments   []*entity.Payment
	expenses   []*entity.Expense
	paymentErr error
	sessions   int
	ranges     [][2]time.Time
}

func (l *fakeLedger) Begin(ctx context.Context) (adapter.LedgerSession, error) {
	l.sessions++
	return &fakeLedgerSession{ledger: l}, nil
}

type fakeLedgerSession struct {
	ledger *fakeLedger
}

func (s *fakeLedgerSession) ListActiveResidents(ctx context.Context) ([]*entity.Resident, error) {
	var out []*entity.Resident
	for _, r := range s.ledger.residents {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeLedgerSession) ListPaymentsForPeriod(ctx context.Context, period entity.BillingPeriod) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range s.ledger.payments {
		if p.ForMonth == period {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeLedgerSession) ListPaymentsInRange(ctx context.Context, start, end time.Time) ([]*entity.Payment, error) {
	if s.ledger.paymentErr != nil {
		return nil, s.ledger.paymentErr
	}
	s.ledger.ranges = append(s.ledger.ranges, [2]time.Time{start, end})
	var out []*entity.Payment
	for _, p := range s.ledger.payments {
		if !p.PaymentDate.Before(start) && p.PaymentDate.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeLedgerSession) ListExpensesInRange(ctx context.Context, start, end time.Time) ([]*entity.Expense, error) {
	var out []*entity.Expense
	for _, e := range s.ledger.expenses {
		if !e.ExpenseDate.Before(start) && e.ExpenseDate.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeLedgerSession) CountResidents(ctx context.Context) (*adapter.ResidentCounts, error) {
	counts := &adapter.ResidentCounts{}
	rooms := map[string]struct{}{}
	for _, r := range s.ledger.residents {
		counts.Total++
		if r.IsActive {
			counts.Active++
			rooms[r.RoomNumber] = struct{}{}
		}
	}
	counts.OccupiedRooms = int64(len(rooms))
	return counts, nil
}

func (s *fakeLedgerSession) Close() error { return nil }

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func paid(amount int64, at time.Time) *entity.Payment {
	return entity.NewPayment(uuid.New(), decimal.NewFromInt(amount), at, entity.ResolvePeriod(at), entity.PaymentMethodCash, "", "", "test")
}

func spent(category string, amount int64, at time.Time) *entity.Expense {
	return entity.NewExpense(category, "", decimal.NewFromInt(amount), at, "test")
}
