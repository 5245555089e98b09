package observability

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

// Metrics is nil-safe: every method on a nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	cacheLookups  *prometheus.CounterVec
	cacheStores   *prometheus.CounterVec
	cacheSwept    *prometheus.CounterVec
	cacheGenerate *prometheus.HistogramVec

	validations    *prometheus.CounterVec
	draftOps       *prometheus.CounterVec
	trainingEvents *prometheus.CounterVec
	commits        *prometheus.CounterVec

	pgStats   *prometheus.GaugeVec
	redisUp   prometheus.Gauge
	redisPing prometheus.Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Enabled reads METRICS_ENABLED; metrics are on unless explicitly disabled.
func Enabled() bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv("METRICS_ENABLED"))) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	v := strings.TrimSpace(os.Getenv("METRICS_SCRAPE_INTERVAL_SECONDS"))
	if v == "" {
		return 10 * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n) * time.Second
}

// Init builds the process-wide metrics once. Returns nil when metrics are disabled.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

// New builds a Metrics on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gradvy_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradvy_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_reccache_lookups_total",
			Help: "Recommendation cache lookups by backend and outcome (hit, miss, expired, error).",
		}, []string{"backend", "outcome"}),
		cacheStores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_reccache_stores_total",
			Help: "Recommendation cache writes by backend and kind (ttl, permanent, invalidate).",
		}, []string{"backend", "kind"}),
		cacheSwept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_reccache_swept_total",
			Help: "Expired recommendation cache entries removed by sweeps.",
		}, []string{"backend"}),
		cacheGenerate: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gradvy_reccache_generate_duration_seconds",
			Help:    "Recommendation regeneration latency by algorithm version and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"algorithm_version", "status"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_validations_total",
			Help: "Validation runs by scope (field, section, profile) and outcome (valid, invalid).",
		}, []string{"scope", "outcome"}),
		draftOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_draft_operations_total",
			Help: "Draft store operations by op and outcome.",
		}, []string{"op", "outcome"}),
		trainingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_training_events_total",
			Help: "Training events appended by event type.",
		}, []string{"event_type"}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradvy_profile_commits_total",
			Help: "Profile commit attempts by outcome (created, updated, invalid, rejected, error).",
		}, []string{"outcome"}),
		pgStats: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "gradvy_postgres_pool",
			Help: "database/sql pool statistics.",
		}, []string{"stat"}),
		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradvy_redis_up",
			Help: "1 when the last redis ping succeeded.",
		}),
		redisPing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradvy_redis_ping_seconds",
			Help: "Latency of the last redis ping.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.cacheLookups, m.cacheStores, m.cacheSwept, m.cacheGenerate,
		m.validations, m.draftOps, m.trainingEvents, m.commits,
		m.pgStats, m.redisUp, m.redisPing,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncCacheLookup(backend, outcome string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(backend, outcome).Inc()
}

func (m *Metrics) IncCacheStore(backend, kind string) {
	if m == nil {
		return
	}
	m.cacheStores.WithLabelValues(backend, kind).Inc()
}

func (m *Metrics) AddCacheSwept(backend string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.cacheSwept.WithLabelValues(backend).Add(float64(n))
}

func (m *Metrics) ObserveGenerate(version, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.cacheGenerate.WithLabelValues(version, status).Observe(dur.Seconds())
}

func (m *Metrics) IncValidation(scope string, valid bool) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(scope, outcome(valid, "valid", "invalid")).Inc()
}

func (m *Metrics) IncDraftOp(op string, err error) {
	if m == nil {
		return
	}
	m.draftOps.WithLabelValues(op, outcome(err == nil, "ok", "error")).Inc()
}

func (m *Metrics) IncTrainingEvent(eventType string) {
	if m == nil {
		return
	}
	m.trainingEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncCommit(result string) {
	if m == nil {
		return
	}
	m.commits.WithLabelValues(result).Inc()
}

func outcome(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// StartPostgresCollector samples db's pool stats on the scrape interval until ctx is done.
// The returned channel closes once the collector has exited.
func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) <-chan struct{} {
	done := make(chan struct{})
	if m == nil || db == nil {
		close(done)
		return done
	}
	interval := scrapeInterval()
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: postgres stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.pgStats.WithLabelValues("open_connections").Set(float64(stats.OpenConnections))
				m.pgStats.WithLabelValues("in_use").Set(float64(stats.InUse))
				m.pgStats.WithLabelValues("idle").Set(float64(stats.Idle))
				m.pgStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
				m.pgStats.WithLabelValues("wait_duration_seconds").Set(stats.WaitDuration.Seconds())
				m.pgStats.WithLabelValues("max_open_connections").Set(float64(stats.MaxOpenConnections))
			}
		}
	}()
	return done
}

// StartRedisCollector pings rdb on the scrape interval. The caller owns rdb and must not
// close it before the returned channel closes.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *redis.Client) <-chan struct{} {
	done := make(chan struct{})
	if m == nil || rdb == nil {
		close(done)
		return done
	}
	interval := scrapeInterval()
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
	return done
}
