package adapter

import "context"

// SweepGuard records which days already had a reminder sweep.
type SweepGuard interface {
	// Claim marks the day as swept. It returns false when the day was already claimed.
	Claim(ctx context.Context, day string) (bool, error)

	// Release drops a claim so a failed sweep can be retried the same day.
	Release(ctx context.Context, day string) error
}
