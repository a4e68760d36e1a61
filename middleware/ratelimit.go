package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// clientBucket pairs a token bucket with the time it was last used, so idle
// clients can be evicted.
type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter throttles requests per client IP. The per-client map is swept
// lazily: entries idle for longer than idleTTL are dropped, keeping the map
// bounded under churning source addresses.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

// NewClientLimiter builds a limiter allowing perMinute sustained requests per
// client with the given burst.
func NewClientLimiter(perMinute, burst int) *ClientLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		clients:   make(map[string]*clientBucket),
		rate:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     burst,
		idleTTL:   10 * time.Minute,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the client may proceed, consuming one token.
func (l *ClientLimiter) Allow(clientIP string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.evictIdle(now)
		l.lastSweep = now
	}

	bucket, ok := l.clients[clientIP]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.clients[clientIP] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.Allow()
}

func (l *ClientLimiter) evictIdle(now time.Time) {
	for ip, bucket := range l.clients {
		if now.Sub(bucket.lastSeen) >= l.idleTTL {
			delete(l.clients, ip)
		}
	}
}

// Middleware rejects over-limit clients with 429. Mounted on the auth routes
// so credential stuffing cannot hammer login or registration.
func (l *ClientLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}
		c.Next()
	}
}
