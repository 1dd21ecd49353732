package reminder

import (
	"context"
	"sync"

	"github.com/residence-hub/backend/internal/application/adapter"
)

// MemoryGuard remembers claimed days for the lifetime of the process.
type MemoryGuard struct {
	mu   sync.Mutex
	days map[string]struct{}
}

// NewMemoryGuard creates an empty MemoryGuard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{days: make(map[string]struct{})}
}

// Claim marks day as swept. It returns false when it already was.
func (g *MemoryGuard) Claim(ctx context.Context, day string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.days[day]; ok {
		return false, nil
	}
	g.days[day] = struct{}{}
	return true, nil
}

// Release forgets a claim.
func (g *MemoryGuard) Release(ctx context.Context, day string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.days, day)
	return nil
}

var _ adapter.SweepGuard = (*MemoryGuard)(nil)
