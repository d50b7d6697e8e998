package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"materna-backend/internal/shared/server/respond"
	"materna-backend/internal/shared/telemetry"
)

// Recovery turns panics into logged 500 responses so one bad request cannot
// take the server down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"error":      rec,
				"stack":      string(debug.Stack()),
			})
			respond.Error(c, http.StatusInternalServerError, "Unexpected server error")
			c.Abort()
		}()
		c.Next()
	}
}
