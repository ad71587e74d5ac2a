package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"perfect-widget/internal/handler/httperr"
	"perfect-widget/internal/pkg/config"
	"perfect-widget/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter throttles availability-triggering requests per widget session,
// falling back to the client IP before a session is resolved.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	interval time.Duration
	burst    int
	idle     time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(cfg config.WidgetConfig) *RateLimiter {
	perMinute := cfg.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		interval: time.Minute / time.Duration(perMinute),
		burst:    burst,
		idle:     cfg.SessionTTL,
	}
}

func (r *RateLimiter) getLimiter(key string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[key]
	if !exists {
		r.evictLocked(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Every(r.interval), r.burst)}
		r.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (r *RateLimiter) evictLocked(now time.Time) {
	if r.idle <= 0 {
		return
	}
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > r.idle {
			delete(r.limiters, key)
		}
	}
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if session, ok := GetSession(c); ok {
			key = session.ID.String()
		}
		if !r.getLimiter(key, time.Now()).Allow() {
			c.Header("Retry-After", strconv.Itoa(r.retryAfterSeconds()))
			httperr.AbortWithError(c, http.StatusTooManyRequests,
				errs.Wrapf(errs.ErrRateLimited, "key %s", key), "Rate limit exceeded. Try again later.", nil)
			return
		}
		c.Next()
	}
}

// retryAfterSeconds is the refill interval of one token, rounded up.
func (r *RateLimiter) retryAfterSeconds() int {
	return int(math.Ceil(r.interval.Seconds()))
}
