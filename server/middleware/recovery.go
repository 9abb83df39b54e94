package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/lambdakit/logger"
)

// ErrorWriter renders an error response for the current request.
type ErrorWriter func(c *gin.Context, err error)

// Recovery returns a Gin middleware that recovers from panics, logs the
// stack and renders the panic through write.
func Recovery(log *logger.Logger, write ErrorWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("Panic recovered", map[string]interface{}{
					"error":              fmt.Sprintf("%v", r),
					"stack":              string(debug.Stack()),
					logger.FieldPath:      c.Request.URL.Path,
					logger.FieldMethod:    c.Request.Method,
					logger.FieldRequestID: c.GetString(RequestIDKey),
				})
				write(c, fmt.Errorf("panic: %v", r))
				c.Abort()
			}
		}()
		c.Next()
	}
}
