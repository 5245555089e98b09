package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/http/response"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/ctxutil"
)

const (
	ParamUserID = "user_id"
	ctxUserID   = "learner_user_id"
)

var errBadUserID = errors.New("user_id must be a positive integer")

// AttachLearner resolves the :user_id path parameter into the request context.
func AttachLearner() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(ParamUserID), 10, 64)
		if err != nil || id <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_user_id", errBadUserID)
			c.Abort()
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: id})
		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxUserID, id)
		c.Next()
	}
}

// UserID returns the learner attached by AttachLearner, or 0.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
