package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/rmitchellscott/inkframe/internal/logging"
)

// RenderRateLimiter throttles render requests per client IP. Rendering
// holds a browser surface for up to the render timeout, so an unthrottled
// client could monopolise the shared session.
type RenderRateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	maxIdle  time.Duration
	lastSeen func() time.Time
}

type clientLimiter struct {
	limiter *rate.Limiter
	seen    time.Time
}

// NewRenderRateLimiter allows rps requests per second with the given burst
// per client IP.
func NewRenderRateLimiter(rps float64, burst int) *RenderRateLimiter {
	l := &RenderRateLimiter{
		clients:  make(map[string]*clientLimiter),
		limit:    rate.Limit(rps),
		burst:    burst,
		maxIdle:  10 * time.Minute,
		lastSeen: time.Now,
	}
	go l.cleanupRoutine()
	return l
}

// RateLimit is the gin middleware enforcing the per-IP limit.
func (l *RenderRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.allow(ip) {
			logging.WarnWithComponent(logging.ComponentRateLimit, "Request throttled", "ip", ip)
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *RenderRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = cl
	}
	cl.seen = l.lastSeen()
	return cl.limiter.Allow()
}

// cleanupRoutine drops limiters for clients idle longer than maxIdle.
func (l *RenderRateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := l.lastSeen()
		for ip, cl := range l.clients {
			if now.Sub(cl.seen) > l.maxIdle {
				delete(l.clients, ip)
			}
		}
		l.mu.Unlock()
	}
}
