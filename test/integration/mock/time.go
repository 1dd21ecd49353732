package mock

import (
	"sync"
	"time"
)

// Time is a settable clock. Once set it keeps ticking from the set instant.
type Time struct {
	mu     sync.Mutex
	base   time.Time
	setAt  time.Time
	pinned bool
}

// NewTime returns a clock that follows the wall clock until SetCurrentTime.
func NewTime() *Time {
	return &Time{}
}

// SetCurrentTime moves the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.base = currentTime
	t.setAt = time.Now()
	t.pinned = true
}

// Reset returns the clock to the wall clock.
func (t *Time) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pinned = false
}

// Now returns the current mocked time.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.pinned {
		return time.Now()
	}
	return t.base.Add(time.Since(t.setAt))
}

// After waits on the wall clock.
func (t *Time) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
