package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter caps requests per client IP inside a rolling window. The app
// is single-user, so this is protection against runaway clients rather than
// fairness between tenants.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			key := c.RealIP()

			mu.Lock()
			b, ok := buckets[key]
			if !ok || now.Sub(b.start) > window {
				b = &bucket{start: now}
				buckets[key] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++

			// Drop buckets from clients that went quiet two windows ago.
			if len(buckets) > 1024 {
				for k, v := range buckets {
					if now.Sub(v.start) > 2*window {
						delete(buckets, k)
					}
				}
			}
			mu.Unlock()

			return next(c)
		}
	}
}
