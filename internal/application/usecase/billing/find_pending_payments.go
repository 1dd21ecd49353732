// Package billing contains billing-period use cases.
package billing

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/application/adapter"
	"github.com/residence-hub/backend/internal/domain/entity"
)

// FindPendingPaymentsInput represents the input for the pending payment lookup.
type FindPendingPaymentsInput struct {
	Period entity.BillingPeriod
}

// FindPendingPaymentsOutput lists active residents without a payment for the period.
type FindPendingPaymentsOutput struct {
	Period        entity.BillingPeriod
	Entries       []*entity.PendingPaymentEntry
	TotalExpected decimal.Decimal
}

// FindPendingPaymentsUseCase computes which active residents have not paid a period.
type FindPendingPaymentsUseCase struct {
	store adapter.LedgerStore
}

// NewFindPendingPaymentsUseCase creates a new FindPendingPaymentsUseCase instance.
func NewFindPendingPaymentsUseCase(store adapter.LedgerStore) *FindPendingPaymentsUseCase {
	return &FindPendingPaymentsUseCase{
		store: store,
	}
}

// Execute returns the active residents minus those with at least one payment
// for the period. Entries are ordered by name, then ID.
func (uc *FindPendingPaymentsUseCase) Execute(ctx context.Context, input FindPendingPaymentsInput) (*FindPendingPaymentsOutput, error) {
	session, err := uc.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger session: %w", err)
	}
	defer session.Close()

	return FindPending(ctx, session, input.Period)
}

// FindPending runs the pending computation inside an existing session.
func FindPending(ctx context.Context, session adapter.LedgerSession, period entity.BillingPeriod) (*FindPendingPaymentsOutput, error) {
	residents, err := session.ListActiveResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active residents: %w", err)
	}

	payments, err := session.ListPaymentsForPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for %s: %w", period, err)
	}

	covered := make(map[uuid.UUID]struct{}, len(payments))
	for _, p := range payments {
		if p.ForMonth == period {
			covered[p.ResidentID] = struct{}{}
		}
	}

	entries := make([]*entity.PendingPaymentEntry, 0, len(residents))
	total := decimal.Zero
	for _, r := range residents {
		if !r.IsActive {
			continue
		}
		if _, paid := covered[r.ID]; paid {
			continue
		}
		entries = append(entries, entity.NewPendingPaymentEntry(r, period))
		total = total.Add(r.MonthlyRent)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ResidentName != entries[j].ResidentName {
			return entries[i].ResidentName < entries[j].ResidentName
		}
		return entries[i].ResidentID.String() < entries[j].ResidentID.String()
	})

	return &FindPendingPaymentsOutput{
		Period:        period,
		Entries:       entries,
		TotalExpected: total,
	}, nil
}

// ResidentIDs returns the IDs in the pending set.
func (o *FindPendingPaymentsOutput) ResidentIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Entries))
	for i, e := range o.Entries {
		ids[i] = e.ResidentID
	}
	return ids
}

// PendingForCurrentMonth resolves the current period from the clock and runs the lookup.
func (uc *FindPendingPaymentsUseCase) PendingForCurrentMonth(ctx context.Context, clock adapter.Clock) (*FindPendingPaymentsOutput, error) {
	return uc.Execute(ctx, FindPendingPaymentsInput{
		Period: entity.ResolvePeriod(clock.Now()),
	})
}
