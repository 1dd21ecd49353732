package billing

import (
	"context"
	"time"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
)

type fakeStore struct {
	residents   []*entity.Resident
	payments    []*entity.Payment
	residentErr error
	paymentErr  error
	beginErr    error
	opened      int
	closed      int
}

func (s *fakeStore) Begin(ctx context.Context) (adapter.LedgerSession, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.opened++
	return &fakeSession{store: s}, nil
}

type fakeSession struct {
	store *fakeStore
}

func (s *fakeSession) ListActiveResidents(ctx context.Context) ([]*entity.Resident, error) {
	if s.store.residentErr != nil {
		return nil, s.store.residentErr
	}
	var active []*entity.Resident
	for _, r := range s.store.residents {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (s *fakeSession) ListPaymentsForPeriod(ctx context.Context, period entity.BillingPeriod) ([]*entity.Payment, error) {
	if s.store.paymentErr != nil {
		return nil, s.store.paymentErr
	}
	var out []*entity.Payment
	for _, p := range s.store.payments {
		if p.ForMonth == period {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeSession) ListPaymentsInRange(ctx context.Context, start, end time.Time) ([]*entity.Payment, error) {
	return nil, nil
}

func (s *fakeSession) ListExpensesInRange(ctx context.Context, start, end time.Time) ([]*entity.Expense, error) {
	return nil, nil
}

func (s *fakeSession) CountResidents(ctx context.Context) (*adapter.ResidentCounts, error) {
	return &adapter.ResidentCounts{}, nil
}

func (s *fakeSession) Close() error {
	s.store.closed++
	return nil
}

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

func (c stubClock) After(d time.Duration) <-chan time.Time {
	return make(chan time.Time)
}
