package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	repos "github.com/Syedsafwan24/Gradvy-sub002/internal/data/repos/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/domain/learner"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/dbctx"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

var (
	ErrSessionNotFound = errors.New("learning session not found")
	ErrSessionEnded    = errors.New("learning session already ended")
)

type SessionService interface {
	Start(dbc dbctx.Context, userID int64) (*learner.LearningSession, error)
	Get(dbc dbctx.Context, userID int64, sessionID uuid.UUID) (*learner.LearningSession, error)
	AppendActivity(dbc dbctx.Context, userID int64, sessionID uuid.UUID, a learner.SessionActivity) (*learner.LearningSession, error)
	End(dbc dbctx.Context, userID int64, sessionID uuid.UUID) (*learner.LearningSession, error)
	List(dbc dbctx.Context, userID int64, limit int) ([]*learner.LearningSession, error)
}

type sessionService struct {
	log      *logger.Logger
	sessions repos.LearningSessionRepo
	now      func() time.Time
}

func NewSessionService(baseLog *logger.Logger, sessions repos.LearningSessionRepo) SessionService {
	return &sessionService{
		log:      baseLog.With("service", "SessionService"),
		sessions: sessions,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *sessionService) Start(dbc dbctx.Context, userID int64) (*learner.LearningSession, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	row := &learner.LearningSession{UserID: userID, StartTime: s.now()}
	if err := s.sessions.Start(dbc, row); err != nil {
		return nil, err
	}
	s.log.Debug("learning session started", "user_id", userID, "session_id", row.SessionID)
	return row, nil
}

func (s *sessionService) Get(dbc dbctx.Context, userID int64, sessionID uuid.UUID) (*learner.LearningSession, error) {
	row, err := s.sessions.GetBySessionID(dbc, sessionID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrSessionNotFound
	}
	if row.UserID != userID {
		// Other learners' sessions are indistinguishable from missing ones.
		return nil, ErrSessionNotFound
	}
	return row, nil
}

func (s *sessionService) AppendActivity(dbc dbctx.Context, userID int64, sessionID uuid.UUID, a learner.SessionActivity) (*learner.LearningSession, error) {
	if _, err := s.Get(dbc, userID, sessionID); err != nil {
		return nil, err
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now()
	}
	if err := s.sessions.AppendActivity(dbc, sessionID, a); err != nil {
		return nil, mapSessionErr(err)
	}
	return s.Get(dbc, userID, sessionID)
}

// End closes the session at the current time. The repository rejects an end before the start.
func (s *sessionService) End(dbc dbctx.Context, userID int64, sessionID uuid.UUID) (*learner.LearningSession, error) {
	if _, err := s.Get(dbc, userID, sessionID); err != nil {
		return nil, err
	}
	row, err := s.sessions.End(dbc, sessionID, s.now())
	if err != nil {
		return nil, mapSessionErr(err)
	}
	s.log.Debug("learning session ended", "user_id", userID, "session_id", sessionID)
	return row, nil
}

func (s *sessionService) List(dbc dbctx.Context, userID int64, limit int) ([]*learner.LearningSession, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.sessions.ListByUserID(dbc, userID, limit)
}

func mapSessionErr(err error) error {
	switch {
	case errors.Is(err, repos.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, repos.ErrSessionEnded):
		return ErrSessionEnded
	default:
		return err
	}
}
