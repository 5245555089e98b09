package services

import (
	"context"
	"strings"

	repos "github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/observability"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/reccache"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type RecommendationView struct {
	Entry  *learner.RecommendationCacheEntry `json:"entry"`
	Cached bool                              `json:"cached"`
}

type RecommendationFeedback struct {
	CourseID string         `json:"course_id"`
	Clicked  bool           `json:"clicked"`
	Rating   *float64       `json:"rating,omitempty"`
	Comment  string         `json:"comment,omitempty"`
	Context  map[string]any `json:"context,omitempty"`
}

type RecommendationService interface {
	// Get serves cached recommendations or regenerates them from the committed profile.
	Get(dbc dbctx.Context, userID int64) (*RecommendationView, error)
	Invalidate(ctx context.Context, userID int64) error
	RecordFeedback(dbc dbctx.Context, userID int64, fb RecommendationFeedback) error
	Sweep(ctx context.Context) (int64, error)
}

type recommendationService struct {
	log      *logger.Logger
	metrics  *observability.Metrics
	profiles repos.ProfileRepo
	events   repos.TrainingEventRepo
	cache    *reccache.Cache
}

func NewRecommendationService(
	baseLog *logger.Logger,
	metrics *observability.Metrics,
	profiles repos.ProfileRepo,
	events repos.TrainingEventRepo,
	cache *reccache.Cache,
) RecommendationService {
	return &recommendationService{
		log:      baseLog.With("service", "RecommendationService"),
		metrics:  metrics,
		profiles: profiles,
		events:   events,
		cache:    cache,
	}
}

func (s *recommendationService) Get(dbc dbctx.Context, userID int64) (view *RecommendationView, err error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	ctx, span := startSpan(dbc.Ctx, "RecommendationService.Get", userID)
	defer func() { endSpan(span, err) }()

	if e, ok, err := s.cache.Get(ctx, userID); err != nil {
		return nil, err
	} else if ok {
		s.served(dbc, userID, e, true)
		return &RecommendationView{Entry: e, Cached: true}, nil
	}
	p, err := s.profiles.GetByUserID(dbctx.Context{Ctx: ctx, Tx: dbc.Tx}, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	e, cached, err := s.cache.GetOrGenerate(ctx, p)
	if err != nil {
		return nil, err
	}
	s.served(dbc, userID, e, cached)
	return &RecommendationView{Entry: e, Cached: cached}, nil
}

// served logs a recommendation_served event. Failures are not surfaced to the reader.
func (s *recommendationService) served(dbc dbctx.Context, userID int64, e *learner.RecommendationCacheEntry, cached bool) {
	ids := make([]string, 0, len(e.Recommendations))
	for _, r := range e.Recommendations {
		ids = append(ids, r.CourseID)
	}
	err := s.events.Append(dbc, &learner.TrainingEvent{
		UserID:    userID,
		EventType: learner.EventRecommendationServed,
		EventData: mustJSON(map[string]any{
			"course_ids":        ids,
			"algorithm_version": e.AlgorithmVersion,
			"cached":            cached,
		}),
	})
	if err != nil {
		s.log.Warn("recommendation_served event failed", "user_id", userID, "error", err)
		return
	}
	s.metrics.IncTrainingEvent(string(learner.EventRecommendationServed))
}

func (s *recommendationService) Invalidate(ctx context.Context, userID int64) error {
	return s.cache.Invalidate(ctx, userID)
}

// RecordFeedback logs a click as recommendation_clicked and anything else as feedback_given.
func (s *recommendationService) RecordFeedback(dbc dbctx.Context, userID int64, fb RecommendationFeedback) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	fb.CourseID = strings.TrimSpace(fb.CourseID)
	if fb.CourseID == "" || (fb.Rating != nil && (*fb.Rating < 0 || *fb.Rating > 5)) {
		return ErrInvalidFeedback
	}
	kind := learner.EventFeedbackGiven
	if fb.Clicked {
		kind = learner.EventRecommendationClicked
	}
	data := map[string]any{"course_id": fb.CourseID}
	if fb.Rating != nil {
		data["rating"] = *fb.Rating
	}
	if fb.Comment != "" {
		data["comment"] = fb.Comment
	}
	if err := s.events.Append(dbc, &learner.TrainingEvent{
		UserID:      userID,
		EventType:   kind,
		EventData:   mustJSON(data),
		UserContext: mustJSON(fb.Context),
	}); err != nil {
		return err
	}
	s.metrics.IncTrainingEvent(string(kind))
	return nil
}

func (s *recommendationService) Sweep(ctx context.Context) (int64, error) {
	return s.cache.Sweep(ctx)
}
