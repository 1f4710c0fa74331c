package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rishusinha26/portfolio-backend/pkg/metrics"
)

// Metrics records request count and latency per route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
