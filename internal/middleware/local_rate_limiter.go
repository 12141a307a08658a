package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalRateLimiter is the single-process counterpart of RateLimiter: one
// token bucket per client IP holding MaxRequests tokens and refilling them
// over Window. Used when no Redis is configured.
type LocalRateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*localEntry
	limit     rate.Limit
	burst     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewLocalRateLimiter(config RateLimiterConfig) *LocalRateLimiter {
	burst := max(config.MaxRequests, 1)
	window := config.Window
	if window <= 0 {
		window = time.Minute
	}

	return &LocalRateLimiter{
		entries: make(map[string]*localEntry),
		limit:   rate.Every(window / time.Duration(burst)),
		burst:   burst,
		window:  window,
		now:     time.Now,
	}
}

// Middleware returns a Gin middleware function for rate limiting
func (l *LocalRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if allowed, retryAfter := l.Allow(c.ClientIP()); !allowed {
			tooManyRequests(c, retryAfter)
			return
		}
		c.Next()
	}
}

// Allow takes one token from key's bucket. When the bucket is empty it
// reports how long until the next token.
func (l *LocalRateLimiter) Allow(key string) (bool, time.Duration) {
	now := l.now()
	limiter := l.limiterFor(key, now)

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, l.window
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (l *LocalRateLimiter) limiterFor(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// A bucket idle for a whole window is full again, so dropping it
	// changes nothing
	if now.Sub(l.lastSweep) > l.window {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.window {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// size reports the number of tracked keys.
func (l *LocalRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
