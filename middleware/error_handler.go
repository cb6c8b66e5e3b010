package middleware

import (
	"log/slog"

	"eventpro-backend/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler reports errors that handlers attached to the context.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors {
			slog.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"error", ginErr.Err,
			)
			utils.CaptureError(c.Request.Context(), ginErr.Err, map[string]interface{}{
				"endpoint": c.Request.URL.Path,
				"method":   c.Request.Method,
				"status":   c.Writer.Status(),
			})
		}
	}
}
