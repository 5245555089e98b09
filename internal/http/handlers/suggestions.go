package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/middleware"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/response"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/services"
)

type SuggestionHandler struct {
	prefs services.PreferenceService
}

func NewSuggestionHandler(prefs services.PreferenceService) *SuggestionHandler {
	return &SuggestionHandler{prefs: prefs}
}

type previewRequest struct {
	BasicInfo          *learner.BasicInfo          `json:"basic_info"`
	ContentPreferences *learner.ContentPreferences `json:"content_preferences"`
}

// POST /api/learners/:user_id/preview
// Scores and suggests from the posted preferences without storing them.
func (h *SuggestionHandler) Preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	p := &learner.Profile{
		UserID:             middleware.UserID(c),
		BasicInfo:          req.BasicInfo,
		ContentPreferences: req.ContentPreferences,
	}
	response.RespondOK(c, h.prefs.Preview(p))
}
