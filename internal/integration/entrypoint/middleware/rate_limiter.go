package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/residence-hub/backend/internal/domain/error"
	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
)

const (
	defaultRateLimit  = 5
	defaultRateWindow = time.Minute

	rateKeyPrefix = "residence-hub:ratelimit:"
)

// RateCounter counts hits per key in fixed windows. Hit returns the number
// of hits in the current window, this one included.
type RateCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter caps how often one staff member may call an endpoint.
// It guards expensive operations such as a manual reminder sweep.
type RateLimiter struct {
	counter  RateCounter
	limit    int64
	window   time.Duration
	disabled bool
}

// NewRateLimiter creates a limiter over counter. Non-positive values fall
// back to five calls per minute.
func NewRateLimiter(counter RateCounter, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if window <= 0 {
		window = defaultRateWindow
	}
	return &RateLimiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
	}
}

// Disable turns the limiter into a pass-through.
func (rl *RateLimiter) Disable() *RateLimiter {
	rl.disabled = true
	return rl
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Counter errors let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled {
			c.Next()
			return
		}

		// Staff are limited per identity, anonymous callers per IP
		key := GetActorFromContext(c)
		if key == "" {
			key = c.ClientIP()
		}
		key = c.FullPath() + "|" + key

		hits, err := rl.counter.Hit(c.Request.Context(), key, rl.window)
		if err != nil {
			slog.Warn("Rate limit counter unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		if hits > rl.limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

type memoryWindow struct {
	hits    int64
	resetAt time.Time
}

// MemoryCounter keeps windows in process memory.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

// NewMemoryCounter creates an empty in-process counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

// Hit implements RateCounter.
func (m *MemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		m.windows[key] = w
	}
	w.hits++

	// Drop expired windows so the map does not grow with every caller.
	for k, other := range m.windows {
		if !now.Before(other.resetAt) {
			delete(m.windows, k)
		}
	}
	return w.hits, nil
}

// RedisCounter shares windows between API replicas.
type RedisCounter struct {
	client redis.Cmdable
}

// NewRedisCounter creates a counter backed by client.
func NewRedisCounter(client redis.Cmdable) *RedisCounter {
	return &RedisCounter{client: client}
}

// Hit implements RateCounter with INCR. The first hit of a window starts
// its expiry.
func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	key = rateKeyPrefix + key

	hits, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if hits == 1 {
		if err := r.client.PExpire(ctx, key, window).Err(); err != nil {
			return hits, err
		}
	}
	return hits, nil
}
