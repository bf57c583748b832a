package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// CounterStore counts requests per key within a fixed window. The in-memory
// store below is the default; a redis-backed one is used when the service
// runs behind more than one instance.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type MemoryCounterStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count int64
	start time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{buckets: make(map[string]*bucket)}
}

func (s *MemoryCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok || now.Sub(b.start) > window {
		b = &bucket{start: now}
		s.buckets[key] = b
	}

	b.count++
	return b.count, nil
}

func RateLimiter(store CounterStore, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:" + c.RealIP()

			count, err := store.Incr(c.Request().Context(), key, window)
			if err != nil {
				// Counter store unavailable; let the request through.
				c.Logger().Warnf("rate limiter store error: %v", err)
				return next(c)
			}

			if count > int64(limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
