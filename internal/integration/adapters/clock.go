package adapters

import (
	"time"

	"github.com/residence-hub/backend/internal/application/adapter"
)

type systemClock struct{}

// NewSystemClock returns a clock backed by the process wall clock.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
