package checkins

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"materna-backend/internal/llm"
	"materna-backend/internal/shared/server/respond"
)

// rateLimitNotice replaces raw quota errors in failure responses so upstream
// plumbing details never reach the client.
const rateLimitNotice = "Our recommendation service is busy right now. Please try again in a few minutes."

// Handler wires HTTP handlers to the check-in service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches check-in routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/check-in", h.submit)
	rg.GET("/check-in/history/:userId", h.history)
}

func (h *Handler) submit(c *gin.Context) {
	var in SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	result, err := h.Svc.Submit(c.Request.Context(), in)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			respond.Error(c, http.StatusBadRequest, vErr.Msg)
			return
		}
		msg := err.Error()
		if kind, _ := llm.Classify(err); kind == llm.KindRateLimited || kind == llm.KindDailyQuota {
			msg = rateLimitNotice
		}
		respond.Error(c, http.StatusInternalServerError, msg)
		return
	}

	c.Set("checkInId", result.Record.ID)
	c.Set("usedFallback", result.UsedFallback)

	respond.OK(c, gin.H{
		"success": true,
		"checkIn": gin.H{
			"id":         result.Record.ID,
			"created_at": result.Record.CreatedAt,
		},
		"check_in_id":                   result.Record.ID,
		"recommendations":               result.Recommendations,
		"message":                       result.Message,
		"ai_message":                    result.Message,
		"gemini_insights":               result.Record.GeminiReasoning,
		"used_fallback_recommendations": result.UsedFallback,
		"data_source":                   result.DataSource,
	})
}

func (h *Handler) history(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	records, err := h.Svc.History(c.Request.Context(), c.Param("userId"), limit)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			respond.Error(c, http.StatusBadRequest, vErr.Msg)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "failed to load check-in history")
		return
	}

	respond.OK(c, gin.H{
		"success": true,
		"history": records,
	})
}
