package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/middleware"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/response"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/services"
)

const defaultSessionListLimit = 20

type LearningSessionHandler struct {
	sessions services.SessionService
}

func NewLearningSessionHandler(sessions services.SessionService) *LearningSessionHandler {
	return &LearningSessionHandler{sessions: sessions}
}

// POST /api/learners/:user_id/sessions
func (h *LearningSessionHandler) Start(c *gin.Context) {
	s, err := h.sessions.Start(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c))
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "start_session_failed")
		return
	}
	response.RespondCreated(c, gin.H{"session": s})
}

// GET /api/learners/:user_id/sessions?limit=20
func (h *LearningSessionHandler) List(c *gin.Context) {
	limit := defaultSessionListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}
	rows, err := h.sessions.List(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), limit)
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "list_sessions_failed")
		return
	}
	response.RespondOK(c, gin.H{"sessions": rows})
}

// GET /api/learners/:user_id/sessions/:session_id
func (h *LearningSessionHandler) Get(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	s, err := h.sessions.Get(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), id)
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "get_session_failed")
		return
	}
	response.RespondOK(c, gin.H{"session": s})
}

type activityRequest struct {
	Type      string         `json:"type" binding:"required"`
	Data      map[string]any `json:"data"`
	Timestamp *time.Time     `json:"timestamp"`
}

// POST /api/learners/:user_id/sessions/:session_id/activities
func (h *LearningSessionHandler) AppendActivity(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	a := learner.SessionActivity{Type: req.Type, Data: req.Data}
	if req.Timestamp != nil {
		a.Timestamp = req.Timestamp.UTC()
	}
	s, err := h.sessions.AppendActivity(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), id, a)
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "append_activity_failed")
		return
	}
	response.RespondOK(c, gin.H{"session": s})
}

// POST /api/learners/:user_id/sessions/:session_id/end
func (h *LearningSessionHandler) End(c *gin.Context) {
	id, ok := sessionParam(c)
	if !ok {
		return
	}
	s, err := h.sessions.End(dbctx.Context{Ctx: c.Request.Context()}, middleware.UserID(c), id)
	if err != nil {
		response.RespondAPIError(c, toAPIError(err), "end_session_failed")
		return
	}
	response.RespondOK(c, gin.H{"session": s})
}

func sessionParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return uuid.Nil, false
	}
	return id, true
}
