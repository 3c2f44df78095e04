package middleware

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tukue/CRM-app-saas/internal/apperr"
	"github.com/tukue/CRM-app-saas/prometheus"
)

// RateLimitConfig configures the fixed-window rate limiter.
type RateLimitConfig struct {
	// MaxRequests is the number of requests allowed per window per key.
	MaxRequests int
	// Window is the fixed, non-sliding counting window.
	Window time.Duration
}

// DefaultRateLimitConfig returns the default limiter settings.
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		MaxRequests: 100,
		Window:      time.Minute,
	}
}

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter counts requests per (client IP, route) key in fixed windows.
// It owns its state: construct one per server, reset only through its own
// API, so tests can build independent instances.
type RateLimiter struct {
	config  *RateLimitConfig
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	return &RateLimiter{
		config:  config,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records a request for key and reports whether it is within the
// window's budget, along with seconds until the window resets.
func (rl *RateLimiter) Allow(key string) (allowed bool, retryAfter int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{count: 0, resetAt: now.Add(rl.config.Window)}
		rl.windows[key] = w
	}

	w.count++
	if w.count > rl.config.MaxRequests {
		retry := int(w.resetAt.Sub(now).Seconds())
		if retry < 1 {
			retry = 1
		}
		return false, retry
	}
	return true, 0
}

// Remaining returns the requests left in the current window for key.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || rl.now().After(w.resetAt) {
		return rl.config.MaxRequests
	}
	remaining := rl.config.MaxRequests - w.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the counter for key, e.g. after a successful response when
// the route opts in to success-reset semantics.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.windows, key)
}

// Sweep evicts expired windows.
func (rl *RateLimiter) Sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// StartSweeper runs Sweep every window until ctx is cancelled.
func (rl *RateLimiter) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(rl.config.Window)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Middleware enforces the limit per (client IP, route). Exceeding the budget
// yields 429 with a Retry-After hint. When resetOnSuccess is true the
// counter is cleared after a successful (< 400) response.
func (rl *RateLimiter) Middleware(resetOnSuccess bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			key := c.RealIP() + ":" + route

			allowed, retryAfter := rl.Allow(key)
			if !allowed {
				prometheus.RecordRateLimited(route)
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.MaxRequests))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return apperr.RateLimited(retryAfter)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.MaxRequests))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining(key)))

			err := next(c)

			if resetOnSuccess && err == nil && c.Response().Status < 400 {
				rl.Reset(key)
			}
			return err
		}
	}
}
