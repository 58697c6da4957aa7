package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginLimiter rate limits login attempts with one token bucket per
// IP+username pair, so an attacker hammering one account does not lock out
// unrelated clients.
type LoginLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	perMin   int
	burst    int
	lastSeen time.Duration
}

type bucket struct {
	limiter *rate.Limiter
	seenAt  time.Time
}

// NewLoginLimiter creates a limiter refilling perMinute tokens per key with
// the given burst capacity.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 5
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &LoginLimiter{
		buckets:  make(map[string]*bucket),
		perMin:   perMinute,
		burst:    burst,
		lastSeen: time.Hour,
	}
}

// Allow consumes one token for the given IP+username pair.
func (l *LoginLimiter) Allow(ip, userName string) bool {
	key := ip + ":" + userName
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMin)/60), l.burst),
		}
		l.buckets[key] = b
	}
	b.seenAt = now

	// Evict buckets idle long enough to be full again, so the map does
	// not grow forever.
	for k, other := range l.buckets {
		if now.Sub(other.seenAt) > l.lastSeen {
			delete(l.buckets, k)
		}
	}

	return b.limiter.Allow()
}

// TooManyAttempts writes the 429 response for a rejected attempt.
func TooManyAttempts(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error": "too many login attempts",
	})
}
