package middleware

import (
	"time"

	"github.com/botanicbuddy/plantcare-service/internal/metrics"
	"github.com/botanicbuddy/plantcare-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger middleware для логирования HTTP-запросов
func RequestLogger(log *logger.Logger, m metrics.APIMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		rawQuery := c.Request.URL.RawQuery
		if rawQuery != "" {
			path = path + "?" + rawQuery
		}

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		clientIP := c.ClientIP()

		m.IncRequest(method, c.FullPath(), statusCode)

		fields := []any{
			"status_code", statusCode,
			"method", method,
			"path", path,
			"latency_ms", latency.Milliseconds(),
			"client_ip", clientIP,
		}

		switch {
		case statusCode >= 500:
			log.Errorw("Request failed", fields...)
		case statusCode >= 400:
			log.Warnw("Request rejected", fields...)
		default:
			log.Infow("Request handled", fields...)
		}
	}
}
