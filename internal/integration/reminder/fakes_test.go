package reminder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/application/usecase/billing"
	"github.com/residence-hub/backend/internal/domain/entity"
)

var errDelivery = errors.New("smtp unavailable")

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits chan time.Duration
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now, waits: make(chan time.Duration, 16)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// After records the requested wait and never fires; tests end the loop by cancelling.
func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	select {
	case c.waits <- d:
	default:
	}
	return make(chan time.Time)
}

type fakeFinder struct {
	mu      sync.Mutex
	entries []*entity.PendingPaymentEntry
	errs    []error
	periods []entity.BillingPeriod
}

func (f *fakeFinder) Execute(ctx context.Context, input billing.FindPendingPaymentsInput) (*billing.FindPendingPaymentsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.periods = append(f.periods, input.Period)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}

	return &billing.FindPendingPaymentsOutput{Period: input.Period, Entries: f.entries}, nil
}

func (f *fakeFinder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.periods)
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []adapter.PaymentReminderInput
	failFor map[string]bool
	started chan struct{}
	release chan struct{}
	// afterSend runs once each reminder is recorded.
	afterSend func()
}

func (n *fakeNotifier) SendPaymentReminder(ctx context.Context, input adapter.PaymentReminderInput) error {
	if n.started != nil {
		close(n.started)
		n.started = nil
		<-n.release
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, input)
	if n.afterSend != nil {
		n.afterSend()
	}
	if n.failFor[input.Email] {
		return errDelivery
	}
	return nil
}

func (n *fakeNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func pendingEntry(name, email string, rent int64) *entity.PendingPaymentEntry {
	return &entity.PendingPaymentEntry{
		ResidentID:     uuid.New(),
		ResidentName:   name,
		Email:          email,
		RoomNumber:     "101",
		ExpectedAmount: decimal.NewFromInt(rent),
	}
}

func at(day, hour, minute, second int) time.Time {
	return time.Date(2024, time.June, day, hour, minute, second, 0, time.UTC)
}
