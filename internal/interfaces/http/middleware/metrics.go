package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/pkg/errors"
)

// Metrics records request count, latency and in-flight gauge per route
// pattern. Unmatched paths are grouped under "unmatched". Errors attached to
// the context by handlers are counted by error code.
func Metrics(m *prometheus.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		m.HTTPActiveRequests.WithLabelValues().Inc()
		defer m.HTTPActiveRequests.WithLabelValues().Dec()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		prometheus.RecordHTTPRequest(m, c.Request.Method, route, c.Writer.Status(), time.Since(start))
		for _, e := range c.Errors {
			prometheus.RecordError(m, "http", errors.GetCode(e.Err).String())
		}
	}
}
