package middleware

import (
	"sync"
	"time"

	"swmanager/internal/apperror"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LimiterIdleTTL is how long a client IP may stay silent before its bucket is dropped
const LimiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for longer than
// LimiterIdleTTL are evicted, so the map is bounded by recently active clients.
type IPRateLimiter struct {
	ips       map[string]*visitor
	mu        sync.Mutex
	r         rate.Limit
	b         int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*visitor),
		r:         r,
		b:         b,
		idleTTL:   LimiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// GetLimiter returns the bucket for key, creating it on first use
func (i *IPRateLimiter) GetLimiter(key string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= i.idleTTL {
		i.sweep(now)
	}

	v, exists := i.ips[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops buckets not touched within idleTTL of now. Callers hold mu.
func (i *IPRateLimiter) sweep(now time.Time) {
	for key, v := range i.ips {
		if now.Sub(v.lastSeen) >= i.idleTTL {
			delete(i.ips, key)
		}
	}
	i.lastSweep = now
}

// Len reports how many client buckets are tracked
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// RateLimitByIP rejects requests beyond r per second (burst b) from one IP with 429
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	return NewIPRateLimiter(r, b).Middleware()
}

func (i *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !i.GetLimiter(c.ClientIP()).Allow() {
			Abort(c, apperror.LimitExceeded("Too many requests from this IP"))
			return
		}
		c.Next()
	}
}
