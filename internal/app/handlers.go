package app

import (
	"gorm.io/gorm"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/clients/redis"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/http"
	httpH "github.com/Syedsafwan24/Gradvy-sub002/internal/http/handlers"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/observability"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type Handlers struct {
	Health          *httpH.HealthHandler
	Preference      *httpH.PreferenceHandler
	Draft           *httpH.DraftHandler
	Suggestion      *httpH.SuggestionHandler
	Recommendation  *httpH.RecommendationHandler
	LearningSession *httpH.LearningSessionHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, serviceset Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")

	checks := map[string]httpH.Check{"postgres": pingPostgres(db)}
	if clients.Redis != nil {
		checks["redis"] = redis.Ping(clients.Redis)
	}
	return Handlers{
		Health:          httpH.NewHealthHandler(checks),
		Preference:      httpH.NewPreferenceHandler(serviceset.Preferences),
		Draft:           httpH.NewDraftHandler(serviceset.Preferences),
		Suggestion:      httpH.NewSuggestionHandler(serviceset.Preferences),
		Recommendation:  httpH.NewRecommendationHandler(serviceset.Recommendations),
		LearningSession: httpH.NewLearningSessionHandler(serviceset.Sessions),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlerset Handlers) *http.Server {
	log.Info("Wiring router...")
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(cfg.HTTPAddr, http.RouterConfig{
		Log:                    log,
		Metrics:                metrics,
		ServiceName:            serviceName,
		CORSOrigins:            cfg.CORSOrigins,
		PreferenceHandler:      handlerset.Preference,
		DraftHandler:           handlerset.Draft,
		SuggestionHandler:      handlerset.Suggestion,
		RecommendationHandler:  handlerset.Recommendation,
		LearningSessionHandler: handlerset.LearningSession,
		HealthHandler:          handlerset.Health,
	})
}
