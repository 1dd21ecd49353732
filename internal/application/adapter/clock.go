package adapter

import "time"

// Clock abstracts wall-clock access so time-driven code can be tested deterministically.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}
