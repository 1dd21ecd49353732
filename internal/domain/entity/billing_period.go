// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"
)

// billingPeriodLayout is the wire and display format of a billing period.
const billingPeriodLayout = "2006-01"

// BillingPeriod identifies the calendar month a payment is credited against.
// It is a comparable value and is safe to use as a map key.
type BillingPeriod struct {
	Year  int
	Month time.Month
}

// ResolvePeriod maps a timestamp to the billing period containing it.
// The calendar fields are read in the timestamp's own location.
func ResolvePeriod(t time.Time) BillingPeriod {
	return BillingPeriod{Year: t.Year(), Month: t.Month()}
}

// NewBillingPeriod creates a billing period, normalizing out-of-range months.
func NewBillingPeriod(year int, month time.Month) BillingPeriod {
	return ResolvePeriod(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// ParseBillingPeriod parses a "YYYY-MM" string.
func ParseBillingPeriod(s string) (BillingPeriod, error) {
	t, err := time.Parse(billingPeriodLayout, s)
	if err != nil {
		return BillingPeriod{}, fmt.Errorf("invalid billing period %q: %w", s, err)
	}
	return ResolvePeriod(t), nil
}

// Start returns the first day of the period at midnight UTC.
func (p BillingPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant after the period (exclusive bound).
func (p BillingPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// AddMonths returns the period n months away from p.
func (p BillingPeriod) AddMonths(n int) BillingPeriod {
	return ResolvePeriod(p.Start().AddDate(0, n, 0))
}

// Next returns the following billing period.
func (p BillingPeriod) Next() BillingPeriod {
	return p.AddMonths(1)
}

// Prev returns the preceding billing period.
func (p BillingPeriod) Prev() BillingPeriod {
	return p.AddMonths(-1)
}

// Before reports whether p is earlier than other.
func (p BillingPeriod) Before(other BillingPeriod) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// Contains reports whether t, read in UTC, falls inside the period.
func (p BillingPeriod) Contains(t time.Time) bool {
	return ResolvePeriod(t.UTC()) == p
}

// IsZero reports whether the period is unset.
func (p BillingPeriod) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// String formats the period as "YYYY-MM".
func (p BillingPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
