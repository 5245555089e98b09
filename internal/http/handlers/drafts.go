package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/middleware"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/response"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/draft"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/services"
)

type DraftHandler struct {
	prefs services.PreferenceService
}

func NewDraftHandler(prefs services.PreferenceService) *DraftHandler {
	return &DraftHandler{prefs: prefs}
}

type saveDraftRequest struct {
	Data     map[string]any `json:"data"`
	LastStep *int           `json:"last_step"`
}

// GET /api/learners/:user_id/drafts/:flow
// A missing, corrupt or outdated draft answers 404 so the client starts the flow fresh.
func (h *DraftHandler) Get(c *gin.Context) {
	flow, ok := flowParam(c)
	if !ok {
		return
	}
	view, err := h.prefs.GetDraft(c.Request.Context(), middleware.UserID(c), flow)
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "get_draft_failed")
		return
	}
	if view == nil {
		response.RespondError(c, http.StatusNotFound, "draft_not_found", errDraftNotFound)
		return
	}
	response.RespondOK(c, gin.H{"draft": view})
}

// PUT /api/learners/:user_id/drafts/:flow
func (h *DraftHandler) Save(c *gin.Context) {
	flow, ok := flowParam(c)
	if !ok {
		return
	}
	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	view, err := h.prefs.SaveDraft(c.Request.Context(), middleware.UserID(c), flow, req.LastStep, req.Data)
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "save_draft_failed")
		return
	}
	response.RespondOK(c, gin.H{"draft": view})
}

// DELETE /api/learners/:user_id/drafts/:flow
func (h *DraftHandler) Clear(c *gin.Context) {
	flow, ok := flowParam(c)
	if !ok {
		return
	}
	if err := h.prefs.ClearDraft(c.Request.Context(), middleware.UserID(c), flow); err != nil {
		response.RespondAPIError(c, toAPIError(err), "clear_draft_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func flowParam(c *gin.Context) (draft.FlowType, bool) {
	flow, err := draft.ParseFlowType(c.Param("flow"))
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "invalid_flow_type")
		return "", false
	}
	return flow, true
}
