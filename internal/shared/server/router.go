package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "materna-backend/internal/auth"
	"materna-backend/internal/checkins"
	"materna-backend/internal/shared/config"
	"materna-backend/internal/shared/metrics"
	"materna-backend/internal/shared/server/middleware"
	"materna-backend/internal/shared/server/respond"
	"materna-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up. Bootstrap builds them;
// tests can inject stubs.
type RouterDeps struct {
	Config         config.Config
	CheckInHandler *checkins.Handler
	UsersHandler   *users.Handler
	GoogleAuth     *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Health, metrics, and the Google flow stay outside auth; everything else
// requires a JWT or a guest header.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	api.Use(
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor:     rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				// History polls more often than submissions happen.
				"DEFAULT": {Rate: 2, Burst: 10},
				"HISTORY": {Rate: 10, Burst: 30},
			},
		}),
	)

	registerMeRoutes(api)
	if deps.CheckInHandler != nil {
		deps.CheckInHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodGet && c.FullPath() == "/api/check-in/history/:userId" {
		return "HISTORY"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
