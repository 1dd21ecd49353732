package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/residence-hub/backend/internal/application/adapter"
)

const (
	redisGuardPrefix     = "reminder:sweep:"
	defaultRedisGuardTTL = 36 * time.Hour
)

// RedisGuard shares claimed days between replicas through SETNX keys that expire after ttl.
// The key value records when the day was claimed.
type RedisGuard struct {
	client redis.Cmdable
	ttl    time.Duration
	clock  adapter.Clock
}

// NewRedisGuard creates a guard backed by client.
func NewRedisGuard(client redis.Cmdable, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = defaultRedisGuardTTL
	}
	return &RedisGuard{
		client: client,
		ttl:    ttl,
	}
}

// WithClock stamps claims with clock instead of the wall clock.
func (g *RedisGuard) WithClock(clock adapter.Clock) *RedisGuard {
	g.clock = clock
	return g
}

func (g *RedisGuard) now() time.Time {
	if g.clock != nil {
		return g.clock.Now()
	}
	return time.Now()
}

// Claim sets the day key if absent.
func (g *RedisGuard) Claim(ctx context.Context, day string) (bool, error) {
	ok, err := g.client.SetNX(ctx, redisGuardPrefix+day, g.now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim sweep day %s: %w", day, err)
	}
	return ok, nil
}

// Release deletes the day key.
func (g *RedisGuard) Release(ctx context.Context, day string) error {
	if err := g.client.Del(ctx, redisGuardPrefix+day).Err(); err != nil {
		return fmt.Errorf("failed to release sweep day %s: %w", day, err)
	}
	return nil
}

var _ adapter.SweepGuard = (*RedisGuard)(nil)
