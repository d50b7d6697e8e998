package respond

import (
	"github.com/gin-gonic/gin"

	"materna-backend/internal/shared/telemetry"
)

// ErrorResponse is the standardized failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Error sends a standardized failure response and logs it.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: message})
}
