package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/Syedsafwan24/Gradvy-sub002/internal/http/handlers"
	httpMW "github.com/Syedsafwan24/Gradvy-sub002/internal/http/middleware"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/observability"
	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// ServiceName labels server spans; tracing middleware is skipped when empty.
	ServiceName string
	CORSOrigins []string

	PreferenceHandler      *httpH.PreferenceHandler
	DraftHandler           *httpH.DraftHandler
	SuggestionHandler      *httpH.SuggestionHandler
	RecommendationHandler  *httpH.RecommendationHandler
	LearningSessionHandler *httpH.LearningSessionHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	learner := r.Group("/api/learners/:" + httpMW.ParamUserID)
	learner.Use(httpMW.AttachLearner())
	{
		if h := cfg.PreferenceHandler; h != nil {
			learner.GET("/profile", h.GetProfile)
			learner.PUT("/profile", h.Commit)
			learner.POST("/validate-field", h.ValidateField)
			learner.POST("/interactions", h.RecordInteraction)
			learner.PUT("/insights", h.ReplaceInsights)
		}

		if h := cfg.DraftHandler; h != nil {
			learner.GET("/drafts/:flow", h.Get)
			learner.PUT("/drafts/:flow", h.Save)
			learner.DELETE("/drafts/:flow", h.Clear)
		}

		if h := cfg.SuggestionHandler; h != nil {
			learner.POST("/preview", h.Preview)
		}

		if h := cfg.RecommendationHandler; h != nil {
			learner.GET("/recommendations", h.Get)
			learner.DELETE("/recommendations", h.Invalidate)
			learner.POST("/recommendations/feedback", h.Feedback)
		}

		if h := cfg.LearningSessionHandler; h != nil {
			learner.POST("/sessions", h.Start)
			learner.GET("/sessions", h.List)
			learner.GET("/sessions/:session_id", h.Get)
			learner.POST("/sessions/:session_id/activities", h.AppendActivity)
			learner.POST("/sessions/:session_id/end", h.End)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "route not found", "code": "not_found"}})
	})
	return r
}
