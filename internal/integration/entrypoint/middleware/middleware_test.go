package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"

	"github.com/residence-hub/backend/internal/application/adapter"
)

type stubTokens struct{}

func (stubTokens) GenerateAccessToken(context.Context, string, string, string) (string, error) {
	return "", nil
}

func (stubTokens) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	switch token {
	case "staff-token":
		return &adapter.TokenClaims{Subject: "s1", Email: "staff@example.com", Role: adapter.RoleStaff}, nil
	case "viewer-token":
		return &adapter.TokenClaims{Subject: "v1", Email: "viewer@example.com", Role: adapter.RoleViewer}, nil
	}
	return nil, errors.New("invalid token")
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, GetActorFromContext(c))
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthenticate(t *testing.T) {
	auth := NewAuthMiddleware(stubTokens{})
	router := newTestRouter(auth.Authenticate())

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{name: "missing header", header: "", wantCode: http.StatusUnauthorized, wantBody: "AUTH-030003"},
		{name: "wrong scheme", header: "Basic abc", wantCode: http.StatusUnauthorized, wantBody: "AUTH-030001"},
		{name: "empty token", header: "Bearer ", wantCode: http.StatusUnauthorized, wantBody: "AUTH-030003"},
		{name: "invalid token", header: "Bearer nope", wantCode: http.StatusUnauthorized, wantBody: "AUTH-030001"},
		{name: "valid token", header: "Bearer staff-token", wantCode: http.StatusOK, wantBody: "staff@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	auth := NewAuthMiddleware(stubTokens{})
	router := newTestRouter(auth.Authenticate(), auth.RequireRole(adapter.RoleAdmin, adapter.RoleStaff))

	for token, want := range map[string]int{
		"staff-token":  http.StatusOK,
		"viewer-token": http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != want {
			t.Errorf("%s: status = %d, want %d", token, w.Code, want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	counter := NewMemoryCounter()
	counter.now = func() time.Time { return now }
	auth := NewAuthMiddleware(stubTokens{})
	router := newTestRouter(auth.Authenticate(), NewRateLimiter(counter, 2, time.Minute).Middleware())

	call := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := call("staff-token"); code != http.StatusOK {
		t.Fatalf("first call = %d", code)
	}
	if code := call("staff-token"); code != http.StatusOK {
		t.Fatalf("second call = %d", code)
	}
	if code := call("staff-token"); code != http.StatusTooManyRequests {
		t.Fatalf("third call = %d, want 429", code)
	}
	if code := call("viewer-token"); code != http.StatusOK {
		t.Fatalf("other actor = %d, want 200", code)
	}

	now = now.Add(time.Minute)
	if code := call("staff-token"); code != http.StatusOK {
		t.Fatalf("call after window = %d, want 200", code)
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	router := newTestRouter(NewRateLimiter(NewMemoryCounter(), 1, time.Minute).Disable().Middleware())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer staff-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("call %d = %d, want 200", i, w.Code)
		}
	}
}

type failingCounter struct{}

func (failingCounter) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("redis down")
}

func TestRateLimiter_CounterErrorPassesThrough(t *testing.T) {
	router := newTestRouter(NewRateLimiter(failingCounter{}, 1, time.Minute).Middleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer staff-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRedisCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	counter := NewRedisCounter(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Hit(ctx, "run|staff@example.com", time.Minute)
		if err != nil {
			t.Fatalf("Hit() error = %v", err)
		}
		if got != want {
			t.Fatalf("Hit() = %d, want %d", got, want)
		}
	}

	if ttl := mr.TTL(rateKeyPrefix + "run|staff@example.com"); ttl != time.Minute {
		t.Errorf("ttl = %s, want 1m", ttl)
	}

	mr.FastForward(time.Minute)
	if got, _ := counter.Hit(ctx, "run|staff@example.com", time.Minute); got != 1 {
		t.Errorf("Hit() after expiry = %d, want 1", got)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := NewMetrics()
	router := newTestRouter(m.Middleware())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/protected", http.MethodGet, "200"))
	if got != 1 {
		t.Errorf("requests_total = %v, want 1", got)
	}

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Error("metrics endpoint does not expose http_requests_total")
	}
}
