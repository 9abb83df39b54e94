package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/lambdakit/logger"
)

// RequestLogger returns a Gin middleware that logs method, path, status and
// latency of every request at a level matching the status code.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := map[string]interface{}{
			logger.FieldMethod:    c.Request.Method,
			logger.FieldPath:      c.Request.URL.Path,
			logger.FieldStatus:    status,
			logger.FieldDuration:  time.Since(start).Milliseconds(),
			logger.FieldRequestID: c.GetString(RequestIDKey),
		}

		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Debug("Request completed", fields)
		}
	}
}
