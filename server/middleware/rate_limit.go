package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/bionetlab/stringviz/store/cache"
)

// limiterTTL bounds how long an idle client keeps its limiter. Expired
// clients start over with a fresh burst, which is acceptable for a
// protection-only limit.
const limiterTTL = 10 * time.Minute

// limiterCapacity caps the number of distinct clients tracked at once.
const limiterCapacity = 4096

// RateLimiter provides per-client rate limiting functionality. Limiters live
// in an LRU cache so the client table cannot grow without bound.
type RateLimiter struct {
	mu     sync.Mutex
	limits *cache.LRUCache

	limit rate.Limit
	burst int
}

// NewRateLimiter creates a new rate limiter allowing rps requests per second
// with the given burst per client key.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &RateLimiter{
		limits: cache.NewLRUCache(limiterCapacity, limiterTTL),
		limit:  rate.Every(time.Duration(float64(time.Second) / rps)),
		burst:  burst,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cached, ok := rl.limits.Get(key); ok {
		return cached.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limits.Set(key, limiter)
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Middleware rejects requests over the per-client budget with 429. Clients
// are keyed by remote IP.
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
