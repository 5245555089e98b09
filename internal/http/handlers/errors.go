package handlers

import (
	"errors"
	"net/http"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/draft"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/reccache"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/apierr"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/services"
)

var errDraftNotFound = errors.New("no draft saved for this flow")

// toAPIError maps core sentinels onto HTTP statuses. Unknown errors pass through and become 500s.
func toAPIError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrProfileNotFound):
		return apierr.NotFound("profile_not_found", err)
	case errors.Is(err, services.ErrSessionNotFound):
		return apierr.NotFound("session_not_found", err)
	case errors.Is(err, services.ErrSessionEnded):
		return apierr.Conflict("session_ended", err)
	case errors.Is(err, services.ErrInvalidUserID),
		errors.Is(err, draft.ErrInvalidUserID),
		errors.Is(err, reccache.ErrInvalidUserID):
		return apierr.BadRequest("invalid_user_id", err)
	case errors.Is(err, draft.ErrInvalidFlowType):
		return apierr.BadRequest("invalid_flow_type", err)
	case errors.Is(err, services.ErrInvalidDraftData):
		return apierr.BadRequest("invalid_draft_data", err)
	case errors.Is(err, services.ErrInvalidFeedback):
		return apierr.BadRequest("invalid_feedback", err)
	case errors.Is(err, schema.ErrPersistenceRejected):
		return apierr.New(http.StatusUnprocessableEntity, "persistence_rejected", err)
	default:
		return err
	}
}
