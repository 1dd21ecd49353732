// Package analytics contains revenue and occupancy reporting use cases.
package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

const (
	// DefaultMonthsBack is the length of the monthly series when none is requested.
	DefaultMonthsBack = 6
	// MaxMonthsBack bounds the monthly series length.
	MaxMonthsBack = 36

	// RevenueCategoryRent is the single revenue bucket; all revenue is rent.
	RevenueCategoryRent = "Rent"
)

var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// DateRange is a window of whole calendar days, inclusive at both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to their UTC calendar day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateDay(start), End: truncateDay(end)}
}

// IsEmpty reports whether the range covers no days (start after end).
func (r DateRange) IsEmpty() bool {
	return r.Start.After(r.End)
}

// Bounds returns the half-open instant window [start, end+1 day) used by store queries.
func (r DateRange) Bounds() (time.Time, time.Time) {
	return r.Start, r.End.AddDate(0, 0, 1)
}

// Days returns the number of calendar days in the range.
func (r DateRange) Days() int {
	if r.IsEmpty() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// MonthRange returns the range covering a whole billing period.
func MonthRange(p entity.BillingPeriod) DateRange {
	return DateRange{Start: p.Start(), End: p.End().AddDate(0, 0, -1)}
}

// PeriodLabel renders a period as "Jun 2024".
func PeriodLabel(p entity.BillingPeriod) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[p.Month], p.Year)
}

// GeneratePeriodSeries lists every billing period touched by the range, oldest first.
func GeneratePeriodSeries(r DateRange) []entity.BillingPeriod {
	if r.IsEmpty() {
		return nil
	}

	var periods []entity.BillingPeriod
	last := entity.ResolvePeriod(r.End)
	for current := entity.ResolvePeriod(r.Start); !last.Before(current); current = current.Next() {
		periods = append(periods, current)
	}
	return periods
}

// percentage returns part/total*100 rounded to two decimals, or 0 when total is zero.
func percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	value, _ := part.Mul(decimal.NewFromInt(100)).Div(total).Round(2).Float64()
	return value
}

func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func sumPayments(payments []*entity.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

func sumExpenses(expenses []*entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
