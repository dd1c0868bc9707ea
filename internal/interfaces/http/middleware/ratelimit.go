package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/infrastructure/database/redis"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
)

// Limiter counts hits in fixed windows. *redis.RateLimiter satisfies it.
type Limiter interface {
	Allow(ctx context.Context, bucket, id string, limit int, per time.Duration) redis.Decision
}

// RateRule names one limited route group.
type RateRule struct {
	Bucket  string
	Limit   int
	Window  time.Duration
	Message string
	// KeyFunc picks the counter identity; client IP when nil.
	KeyFunc func(c *gin.Context) string
}

// RateLimit enforces rule and reports the window through X-RateLimit-*
// headers. Rejected requests get 429, Retry-After and {"error": Message}.
func RateLimit(limiter Limiter, rule RateRule, metrics *prometheus.AppMetrics) gin.HandlerFunc {
	keyFunc := rule.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	now := time.Now

	return func(c *gin.Context) {
		if rule.Limit <= 0 || limiter == nil {
			c.Next()
			return
		}
		d := limiter.Allow(c.Request.Context(), rule.Bucket, keyFunc(c), rule.Limit, rule.Window)

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

		if !d.Allowed {
			prometheus.RecordRateLimited(metrics, rule.Bucket)
			h.Set("Retry-After", strconv.Itoa(int(d.RetryAfter(now()).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": rule.Message})
			return
		}
		c.Next()
	}
}
