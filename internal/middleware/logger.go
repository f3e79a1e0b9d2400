package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggerMiddleware emits one line per request after the handler chain runs.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	sugar := logger.Sugar()

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			sugar.Errorw("HTTP request failed", append(fields, "errors", c.Errors.String())...)
			return
		}
		sugar.Infow("HTTP request", fields...)
	}
}
