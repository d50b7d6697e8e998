package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes body as JSON with the given status code.
func JSON(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// OK writes body as a 200 JSON response.
func OK(c *gin.Context, body any) {
	JSON(c, http.StatusOK, body)
}
