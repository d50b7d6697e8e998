package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"materna-backend/internal/shared/server/middleware"
	"materna-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/profile", h.getProfile)
	rg.PUT("/users/profile", h.updateProfile)
}

func (h *Handler) getProfile(c *gin.Context) {
	userID, ok := h.requireSignedIn(c)
	if !ok {
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "user not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	respond.OK(c, gin.H{"success": true, "profile": user})
}

func (h *Handler) updateProfile(c *gin.Context) {
	userID, ok := h.requireSignedIn(c)
	if !ok {
		return
	}
	var update ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.Error(c, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "user not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	respond.OK(c, gin.H{"success": true, "profile": user})
}

func (h *Handler) requireSignedIn(c *gin.Context) (string, bool) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "service unavailable")
		return "", false
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		if guest, ok2 := isGuest.(bool); ok2 && guest {
			respond.Error(c, http.StatusUnauthorized, "login required")
			return "", false
		}
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "login required")
		return "", false
	}
	return userID, true
}
