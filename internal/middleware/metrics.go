package middleware

import (
	"time"

	"github.com/haierkeys/fast-note-service/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 记录请求计数与耗时，按路由模板聚合
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
