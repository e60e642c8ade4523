package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/user/moovie-semantic/internal/metrics"
)

// Metrics 记录 HTTP 请求数和耗时，route 使用路由模板避免标签爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
