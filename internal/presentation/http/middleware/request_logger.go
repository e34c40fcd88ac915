package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/observability/logging"
)

// RequestLogger writes one record per request to the http channel
func RequestLogger(logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
		}
		switch {
		case status >= 500:
			logger.HTTP().Error("Request failed", args...)
		case status >= 400:
			logger.HTTP().Warn("Request rejected", args...)
		default:
			logger.HTTP().Debug("Request served", args...)
		}
	}
}
