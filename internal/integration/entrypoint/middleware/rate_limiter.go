// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"math"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxRewrites is the number of ledger rewrites an operator may trigger per window.
	defaultMaxRewrites = 10
	defaultWindow      = 1 * time.Minute
)

// rewriteWindow counts the rewrites of one operator in the current window.
type rewriteWindow struct {
	rewrites int
	endsAt   time.Time
}

// RateLimiter throttles the routes that rewrite a whole ledger file (statement import,
// database sync). Each operator and client address gets its own fixed window.
type RateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rewriteWindow
	maxRewrites int
	window      time.Duration
}

// NewRateLimiter creates a rate limiter allowing 10 rewrites per minute.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxRewrites, defaultWindow)
}

// NewRateLimiterWithConfig creates a rate limiter allowing maxRewrites per window.
func NewRateLimiterWithConfig(maxRewrites int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		entries:     make(map[string]*rewriteWindow),
		maxRewrites: maxRewrites,
		window:      window,
	}
}

// Middleware refuses a rewrite with 429 and a Retry-After header once the operator's
// window is used up. It is a pass-through when ENV=test or E2E_MODE=true.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("E2E_MODE") == "true" || os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		session := GetSession(c)
		address := c.ClientIP()
		if address == "" {
			address = c.Request.RemoteAddr
		}

		retryAfter, ok := rl.allow(session.Operator + "|" + address)
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:   "too many ledger rewrites, try again later",
				Code:    string(domainerror.ErrCodeRateLimited),
				Details: "operator " + session.Operator + " on " + c.FullPath(),
			})
			return
		}

		c.Next()
	}
}

// allow records one rewrite for key. When the window is used up it returns false and
// the time left until the window ends.
func (rl *RateLimiter) allow(key string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.entries[key]
	if !ok || now.After(w.endsAt) {
		rl.entries[key] = &rewriteWindow{rewrites: 1, endsAt: now.Add(rl.window)}
		return 0, true
	}
	if w.rewrites >= rl.maxRewrites {
		return w.endsAt.Sub(now), false
	}
	w.rewrites++
	return 0, true
}

// Reset forgets every window.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*rewriteWindow)
}

// StartCleanup drops finished windows every interval until ctx is cancelled.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

// Cleanup drops finished windows.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, w := range rl.entries {
		if now.After(w.endsAt) {
			delete(rl.entries, key)
		}
	}
}
