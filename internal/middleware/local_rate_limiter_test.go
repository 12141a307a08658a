package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests move the limiter's time by hand.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLocalLimiter(maxRequests int, window time.Duration) (*LocalRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLocalRateLimiter(RateLimiterConfig{MaxRequests: maxRequests, Window: window})
	l.now = clock.now
	return l, clock
}

func TestLocalRateLimiter_BurstThenBlock(t *testing.T) {
	l, _ := newTestLocalLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1")
		assert.True(t, allowed, "Request %d should succeed", i+1)
	}

	allowed, retryAfter := l.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.InDelta(t, float64(20*time.Second), float64(retryAfter), float64(time.Millisecond))

	// Other clients have their own bucket
	allowed, _ = l.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestLocalRateLimiter_Refills(t *testing.T) {
	l, clock := newTestLocalLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		l.Allow("10.0.0.1")
	}

	clock.advance(21 * time.Second)
	allowed, _ := l.Allow("10.0.0.1")
	assert.True(t, allowed)

	allowed, _ = l.Allow("10.0.0.1")
	assert.False(t, allowed)
}

func TestLocalRateLimiter_SweepsIdleClients(t *testing.T) {
	l, clock := newTestLocalLimiter(3, time.Minute)

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	assert.Equal(t, 2, l.size())

	clock.advance(2 * time.Minute)
	l.Allow("10.0.0.3")
	assert.Equal(t, 1, l.size())
}

func TestLocalRateLimiter_Middleware(t *testing.T) {
	l := NewLocalRateLimiter(RateLimiterConfig{MaxRequests: 2, Window: time.Hour})
	router := newLimitedRouter(l)

	assert.Equal(t, http.StatusOK, doFrom(router, "192.168.1.1").Code)
	assert.Equal(t, http.StatusOK, doFrom(router, "192.168.1.1").Code)

	w := doFrom(router, "192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
