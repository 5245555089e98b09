package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	repos "github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/data/schema"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/observability"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/draft"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/reccache"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/scoring"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/personalization/validation"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type CommitInput struct {
	BasicInfo          *learner.BasicInfo          `json:"basic_info"`
	ContentPreferences *learner.ContentPreferences `json:"content_preferences"`
	// Flow names the onboarding flow being finished, if any. Its completion is logged as a training event.
	Flow draft.FlowType `json:"flow_type,omitempty"`
}

type CommitResult struct {
	Committed  bool                     `json:"committed"`
	Created    bool                     `json:"created"`
	Validation validation.ProfileResult `json:"validation"`
	View       *ProfileView             `json:"profile,omitempty"`
}

type PreferenceService interface {
	GetProfile(dbc dbctx.Context, userID int64) (*ProfileView, error)
	// ValidateField checks one field; fields without declared rules are valid.
	ValidateField(section, field string, value any) validation.Result
	ValidateProfile(p *learner.Profile) validation.ProfileResult
	// Preview computes the read model of an uncommitted profile.
	Preview(p *learner.Profile) ReadModel

	SaveDraft(ctx context.Context, userID int64, flow draft.FlowType, step *int, partial map[string]any) (*DraftView, error)
	GetDraft(ctx context.Context, userID int64, flow draft.FlowType) (*DraftView, error)
	ClearDraft(ctx context.Context, userID int64, flow draft.FlowType) error

	// Commit validates and persists a full profile. An invalid profile is reported through
	// CommitResult.Validation, not as an error.
	Commit(dbc dbctx.Context, userID int64, in CommitInput) (*CommitResult, error)
	RecordInteraction(dbc dbctx.Context, userID int64, it learner.Interaction) error
	ReplaceInsights(dbc dbctx.Context, userID int64, insights map[string]any) error
}

type preferenceService struct {
	db        *gorm.DB
	log       *logger.Logger
	metrics   *observability.Metrics
	validator *validation.Validator
	profiles  repos.ProfileRepo
	events    repos.TrainingEventRepo
	drafts    draft.Store
	cache     *reccache.Cache
}

func NewPreferenceService(
	db *gorm.DB,
	baseLog *logger.Logger,
	metrics *observability.Metrics,
	validator *validation.Validator,
	profiles repos.ProfileRepo,
	events repos.TrainingEventRepo,
	drafts draft.Store,
	cache *reccache.Cache,
) PreferenceService {
	if validator == nil {
		validator = validation.New(nil)
	}
	return &preferenceService{
		db:        db,
		log:       baseLog.With("service", "PreferenceService"),
		metrics:   metrics,
		validator: validator,
		profiles:  profiles,
		events:    events,
		drafts:    drafts,
		cache:     cache,
	}
}

func startSpan(ctx context.Context, name string, userID int64) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := observability.Tracer().Start(ctx, name)
	if userID > 0 {
		span.SetAttributes(attribute.Int64("learner.user_id", userID))
	}
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *preferenceService) GetProfile(dbc dbctx.Context, userID int64) (view *ProfileView, err error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	ctx, span := startSpan(dbc.Ctx, "PreferenceService.GetProfile", userID)
	defer func() { endSpan(span, err) }()

	var (
		profile *learner.Profile
		drafts  = make([]*draft.Draft, len(draft.Flows()))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.profiles.GetByUserID(dbctx.Context{Ctx: gctx, Tx: dbc.Tx}, userID)
		profile = p
		return err
	})
	for i, flow := range draft.Flows() {
		g.Go(func() error {
			d, err := s.drafts.Load(gctx, userID, flow)
			if err != nil {
				// Drafts are disposable; a broken draft store must not hide the profile.
				s.log.Warn("draft load failed", "user_id", userID, "flow_type", flow, "error", err)
				return nil
			}
			drafts[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	view = &ProfileView{Profile: profile, ReadModel: buildReadModel(s.validator, profile)}
	for i, flow := range draft.Flows() {
		if drafts[i] != nil {
			if view.Drafts == nil {
				view.Drafts = map[draft.FlowType]*draft.Draft{}
			}
			view.Drafts[flow] = drafts[i]
		}
	}
	return view, nil
}

func (s *preferenceService) ValidateField(section, field string, value any) validation.Result {
	res := s.validator.ValidateField(section, field, value)
	s.metrics.IncValidation("field", res.IsValid)
	return res
}

func (s *preferenceService) ValidateProfile(p *learner.Profile) validation.ProfileResult {
	res := s.validator.ValidateProfile(p)
	s.metrics.IncValidation("profile", res.IsValid)
	return res
}

func (s *preferenceService) Preview(p *learner.Profile) ReadModel {
	rm := buildReadModel(s.validator, p)
	s.metrics.IncValidation("profile", rm.IsValid)
	return rm
}

func (s *preferenceService) SaveDraft(ctx context.Context, userID int64, flow draft.FlowType, step *int, partial map[string]any) (view *DraftView, err error) {
	ctx, span := startSpan(ctx, "PreferenceService.SaveDraft", userID)
	defer func() { endSpan(span, err) }()

	if _, err := learner.ProfileFromDocument(userID, partial); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraftData, err)
	}
	d, err := s.drafts.Save(ctx, userID, flow, step, partial)
	s.metrics.IncDraftOp("save", err)
	if err != nil {
		return nil, err
	}
	return s.draftView(userID, d)
}

func (s *preferenceService) GetDraft(ctx context.Context, userID int64, flow draft.FlowType) (*DraftView, error) {
	d, err := s.drafts.Load(ctx, userID, flow)
	s.metrics.IncDraftOp("load", err)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return s.draftView(userID, d)
}

func (s *preferenceService) ClearDraft(ctx context.Context, userID int64, flow draft.FlowType) error {
	err := s.drafts.Clear(ctx, userID, flow)
	s.metrics.IncDraftOp("clear", err)
	return err
}

func (s *preferenceService) draftView(userID int64, d *draft.Draft) (*DraftView, error) {
	p, err := learner.ProfileFromDocument(userID, d.Data)
	if err != nil {
		// A stored draft that no longer decodes is shown without a read model.
		s.log.Warn("draft data does not decode as a profile", "user_id", userID, "flow_type", d.Flow, "error", err)
		p = &learner.Profile{UserID: userID}
	}
	return &DraftView{Draft: d, ReadModel: buildReadModel(s.validator, p)}, nil
}

func (s *preferenceService) Commit(dbc dbctx.Context, userID int64, in CommitInput) (result *CommitResult, err error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	ctx, span := startSpan(dbc.Ctx, "PreferenceService.Commit", userID)
	defer func() { endSpan(span, err) }()

	candidate := &learner.Profile{UserID: userID, BasicInfo: in.BasicInfo, ContentPreferences: in.ContentPreferences}
	res := s.ValidateProfile(candidate)
	if !res.IsValid {
		s.metrics.IncCommit("invalid")
		return &CommitResult{Validation: res}, nil
	}

	var (
		saved   *learner.Profile
		created bool
	)
	commit := func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		p, c, err := s.profiles.Upsert(inner, userID, in.BasicInfo, in.ContentPreferences)
		if err != nil {
			return err
		}
		saved, created = p, c
		return s.events.Append(inner, s.commitEvents(p, c, in.Flow)...)
	}
	if dbc.Tx != nil {
		err = commit(dbc.Tx)
	} else {
		err = s.db.WithContext(ctx).Transaction(commit)
	}
	if err != nil {
		s.metrics.IncCommit(commitFailure(err))
		return nil, fmt.Errorf("commit profile: %w", err)
	}
	if created {
		s.metrics.IncCommit("created")
	} else {
		s.metrics.IncCommit("updated")
	}

	// The profile is durable from here on; draft and cache cleanup failures are only logged.
	for _, flow := range draft.Flows() {
		if cerr := s.drafts.Clear(ctx, userID, flow); cerr != nil {
			s.log.Warn("draft clear after commit failed", "user_id", userID, "flow_type", flow, "error", cerr)
		}
	}
	if s.cache != nil {
		if cerr := s.cache.Invalidate(ctx, userID); cerr != nil {
			s.log.Warn("recommendation cache invalidate failed", "user_id", userID, "error", cerr)
		}
	}
	s.log.Info("profile committed", "user_id", userID, "created", created)

	return &CommitResult{
		Committed:  true,
		Created:    created,
		Validation: res,
		View:       &ProfileView{Profile: saved, ReadModel: buildReadModel(s.validator, saved)},
	}, nil
}

func (s *preferenceService) commitEvents(p *learner.Profile, created bool, flow draft.FlowType) []*learner.TrainingEvent {
	now := time.Now().UTC()
	kind := learner.EventProfileUpdated
	if created {
		kind = learner.EventProfileCreated
	}
	userCtx := mustJSON(map[string]any{
		"completion_percentage": scoring.Completion(p),
		"onboarding_score":      scoring.OnboardingScore(p).Score,
		"completion_schema":     scoring.CompletionSchemaVersion,
	})
	events := []*learner.TrainingEvent{{
		UserID:      p.UserID,
		EventType:   kind,
		Timestamp:   now,
		EventData:   mustJSON(p.Document()),
		UserContext: userCtx,
	}}
	if flow != "" {
		events = append(events, &learner.TrainingEvent{
			UserID:      p.UserID,
			EventType:   learner.EventOnboardingCompleted,
			Timestamp:   now,
			EventData:   mustJSON(map[string]any{"flow_type": flow}),
			UserContext: userCtx,
		})
	}
	for _, ev := range events {
		s.metrics.IncTrainingEvent(string(ev.EventType))
	}
	return events
}

func (s *preferenceService) RecordInteraction(dbc dbctx.Context, userID int64, it learner.Interaction) (err error) {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	ctx, span := startSpan(dbc.Ctx, "PreferenceService.RecordInteraction", userID)
	defer func() { endSpan(span, err) }()

	if it.Timestamp.IsZero() {
		it.Timestamp = time.Now().UTC()
	}
	record := func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.profiles.AppendInteraction(inner, userID, it); err != nil {
			return err
		}
		return s.events.Append(inner, &learner.TrainingEvent{
			UserID:      userID,
			EventType:   learner.EventInteractionRecorded,
			Timestamp:   it.Timestamp,
			EventData:   mustJSON(map[string]any{"type": it.Type, "data": it.Data}),
			UserContext: mustJSON(it.Context),
		})
	}
	if dbc.Tx != nil {
		err = record(dbc.Tx)
	} else {
		err = s.db.WithContext(ctx).Transaction(record)
	}
	if errors.Is(err, repos.ErrProfileNotFound) {
		return ErrProfileNotFound
	}
	if err == nil {
		s.metrics.IncTrainingEvent(string(learner.EventInteractionRecorded))
	}
	return err
}

func (s *preferenceService) ReplaceInsights(dbc dbctx.Context, userID int64, insights map[string]any) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	err := s.profiles.ReplaceInsights(dbc, userID, mustJSON(insights))
	if errors.Is(err, repos.ErrProfileNotFound) {
		return ErrProfileNotFound
	}
	return err
}

func commitFailure(err error) string {
	if errors.Is(err, schema.ErrPersistenceRejected) {
		return "rejected"
	}
	return "error"
}

func mustJSON(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("{}")
	}
	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}
