package middlewares

import (
	"net/http"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/moyoez/configd/tool"
)

// LimiterIdleTTL is how long a client's limiter survives without requests.
const LimiterIdleTTL = 10 * time.Minute

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters *ttlworker.Cache[string, *rate.Limiter]
}

// NewRateLimiter returns a limiter allowing rps requests per second per
// client with the given burst. rps <= 0 disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: ttlworker.NewCache[string, *rate.Limiter](LimiterIdleTTL),
	}
}

func (r *RateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.limiters.Get(ip)
	if l == nil {
		l = rate.NewLimiter(r.limit, r.burst)
	}
	// re-set on every hit so active clients don't expire
	r.limiters.Set(ip, l)
	return l
}

// Allow reports whether a request from ip may proceed now.
func (r *RateLimiter) Allow(ip string) bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	return r.limiterFor(ip).Allow()
}

// Middleware rejects requests over the limit with 429.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.Allow(ip) {
			tool.DefaultLogger.Debugf("Rate limited %s %s from %s", c.Request.Method, c.Request.URL.Path, ip)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, tool.FastReturnErrorWithData("Too many requests", map[string]any{"ip": ip}))
			return
		}
		c.Next()
	}
}
