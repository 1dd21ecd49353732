package dto

import (
	"time"

	"github.com/residence-hub/backend/internal/integration/reminder"
)

// SweepResultResponse summarizes a reminder sweep.
type SweepResultResponse struct {
	Period      string    `json:"period"`
	Pending     int       `json:"pending"`
	Sent        int       `json:"sent"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
	Interrupted bool      `json:"interrupted"`
}

// ToSweepResultResponse converts a SweepResult to its DTO.
func ToSweepResultResponse(r *reminder.SweepResult) SweepResultResponse {
	return SweepResultResponse{
		Period:      Period(r.Period),
		Pending:     r.Pending,
		Sent:        r.Sent,
		Failed:      r.Failed,
		Skipped:     r.Skipped,
		StartedAt:   r.StartedAt,
		DurationMS:  r.Duration.Milliseconds(),
		Interrupted: r.Interrupted,
	}
}
