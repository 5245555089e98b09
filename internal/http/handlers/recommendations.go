package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/middleware"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/response"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/services"
)

type RecommendationHandler struct {
	recs services.RecommendationService
}

func NewRecommendationHandler(recs services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recs: recs}
}

// GET /api/learners/:user_id/recommendations
func (h *RecommendationHandler) Get(c *gin.Context) {
	view, err := h.recs.Get(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c))
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "get_recommendations_failed")
		return
	}
	response.RespondOK(c, view)
}

// DELETE /api/learners/:user_id/recommendations
func (h *RecommendationHandler) Invalidate(c *gin.Context) {
	if err := h.recs.Invalidate(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.RespondAPIError(c, toAPIError(err), "invalidate_recommendations_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/learners/:user_id/recommendations/feedback
func (h *RecommendationHandler) Feedback(c *gin.Context) {
	var req services.RecommendationFeedback
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.recs.RecordFeedback(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), req); err != nil {
		response.RespondAPIError(c, toAPIError(err), "record_feedback_failed")
		return
	}
	c.Status(http.StatusNoContent)
}
