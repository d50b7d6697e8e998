package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"materna-backend/internal/shared/server/middleware"
	"materna-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the identity echo endpoint. The UI calls it on
// load to decide between the signed-in and guest experiences.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "missing or invalid token")
		return
	}

	response := gin.H{"userId": userID}
	optional := map[string]string{
		"email":   middleware.UserEmailFromContext(c),
		"name":    middleware.UserNameFromContext(c),
		"picture": middleware.UserPictureFromContext(c),
	}
	for key, val := range optional {
		if val != "" {
			response[key] = val
		}
	}

	respond.OK(c, response)
}
