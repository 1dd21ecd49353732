// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// ResidentCounts summarizes the resident table at a point in time.
type ResidentCounts struct {
	Total         int64
	Active        int64
	OccupiedRooms int64
}

// LedgerStore hands out read sessions over residents, payments and expenses.
type LedgerStore interface {
	// Begin opens a session backed by a consistent snapshot where the store supports one.
	// The caller must Close the session.
	Begin(ctx context.Context) (LedgerSession, error)
}

// LedgerSession is a scoped, read-only view of the ledger.
type LedgerSession interface {
	// ListActiveResidents returns every resident with IsActive set.
	ListActiveResidents(ctx context.Context) ([]*entity.Resident, error)

	// ListPaymentsForPeriod returns every payment credited to the period.
	ListPaymentsForPeriod(ctx context.Context, period entity.BillingPeriod) ([]*entity.Payment, error)

	// ListPaymentsInRange returns payments with PaymentDate in [start, end).
	ListPaymentsInRange(ctx context.Context, start, end time.Time) ([]*entity.Payment, error)

	// ListExpensesInRange returns expenses with ExpenseDate in [start, end).
	ListExpensesInRange(ctx context.Context, start, end time.Time) ([]*entity.Expense, error)

	// CountResidents returns resident and room occupancy counts.
	CountResidents(ctx context.Context) (*ResidentCounts, error)

	// Close releases the session. It is safe to call more than once.
	Close() error
}
