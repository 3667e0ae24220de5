package middleware

import (
	"time"

	"graphstack-keeper/services"

	"github.com/gin-gonic/gin"
)

/**
 * HTTP request accounting middleware
 * @description
 * - Counts requests per route and records handling duration
 * - Requests ending with status >= 400 are counted as errors
 * - Feeds the counters surfaced by the /healthz endpoint
 */
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		services.IncrementRequestCount(route)
		services.RecordRequestDuration(route, duration)

		if statusCode >= 400 {
			services.IncrementErrorCount(route)
		}
	}
}
