package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/middleware"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/response"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/draft"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/services"
)

type PreferenceHandler struct {
	prefs services.PreferenceService
}

func NewPreferenceHandler(prefs services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// GET /api/learners/:user_id/profile
func (h *PreferenceHandler) GetProfile(c *gin.Context) {
	view, err := h.prefs.GetProfile(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c))
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "get_profile_failed")
		return
	}
	response.RespondOK(c, gin.H{"profile": view})
}

type commitRequest struct {
	BasicInfo          *learner.BasicInfo          `json:"basic_info"`
	ContentPreferences *learner.ContentPreferences `json:"content_preferences"`
	FlowType           string                      `json:"flow_type"`
}

// PUT /api/learners/:user_id/profile
// An invalid profile answers 422 with the per-field errors and persists nothing.
func (h *PreferenceHandler) Commit(c *gin.Context) {
	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.CommitInput{BasicInfo: req.BasicInfo, ContentPreferences: req.ContentPreferences}
	if req.FlowType != "" {
		flow, err := draft.ParseFlowType(req.FlowType)
		if err != nil {
			response.RespondAPIError(c, toAPIError(err), "commit_profile_failed")
			return
		}
		in.Flow = flow
	}
	res, err := h.prefs.Commit(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), in)
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "commit_profile_failed")
		return
	}
	if !res.Committed {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"validation": res.Validation})
		return
	}
	if res.Created {
		response.RespondCreated(c, res)
		return
	}
	response.RespondOK(c, res)
}

type validateFieldRequest struct {
	Section string `json:"section" binding:"required"`
	Field   string `json:"field" binding:"required"`
	Value   any    `json:"value"`
}

// POST /api/learners/:user_id/validate-field
func (h *PreferenceHandler) ValidateField(c *gin.Context) {
	var req validateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, h.prefs.ValidateField(req.Section, req.Field, req.Value))
}

type interactionRequest struct {
	Type      learner.InteractionType `json:"type" binding:"required"`
	Data      map[string]any          `json:"data"`
	Context   map[string]any          `json:"context"`
	Timestamp *time.Time              `json:"timestamp"`
}

// POST /api/learners/:user_id/interactions
func (h *PreferenceHandler) RecordInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	it := learner.Interaction{Type: req.Type, Data: req.Data, Context: req.Context}
	if req.Timestamp != nil {
		it.Timestamp = req.Timestamp.UTC()
	}
	if err := h.prefs.RecordInteraction(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), it); err != nil {
		response.RespondAPIError(c, toAPIError(err), "record_interaction_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// PUT /api/learners/:user_id/insights
func (h *PreferenceHandler) ReplaceInsights(c *gin.Context) {
	var insights map[string]any
	if err := c.ShouldBindJSON(&insights); err != nil && !errors.Is(err, io.EOF) {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := h.prefs.ReplaceInsights(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), insights); err != nil {
		response.RespondAPIError(c, toAPIError(err), "replace_insights_failed")
		return
	}
	c.Status(http.StatusNoContent)
}
