// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/residence-hub/backend/internal/domain/entity"
)

// Wire formats shared by every endpoint.
const (
	DateLayout   = time.DateOnly
	PeriodLayout = "2006-01"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Date formats a calendar day.
func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// OptionalDate formats a calendar day, or returns nil.
func OptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := Date(*t)
	return &s
}

// Period formats a billing period.
func Period(p entity.BillingPeriod) string {
	return p.String()
}

// Round2 rounds a percentage for display.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
