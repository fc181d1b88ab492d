// Package rest serves the merged dashboard, map data, trend history and the
// manual actions over HTTP/JSON.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/etwin/twinboard/internal/dashboard"
	"github.com/etwin/twinboard/internal/database"
	"github.com/etwin/twinboard/internal/metrics"
	"github.com/etwin/twinboard/internal/middleware"
	"github.com/etwin/twinboard/internal/models"
)

// DashboardService is the part of the poller the HTTP API drives.
type DashboardService interface {
	Latest() *models.Dashboard
	Refresh(ctx context.Context, force bool) (*models.Dashboard, bool, error)
	Project(ctx context.Context, req models.PolicyRequest) (*models.Dashboard, error)
	Emergency(ctx context.Context) (*models.EmergencyResult, *models.Dashboard, error)
	InjectSignal(ctx context.Context, update models.SignalUpdate) (map[string]*models.UpdateAck, *models.Dashboard, error)
}

// ChatService answers policy questions.
type ChatService interface {
	Ask(ctx context.Context, question string) (*models.ChatReply, error)
}

// ServerConfig holds configuration options for the HTTP server
type ServerConfig struct {
	CacheSize       int           // Size of the trend response cache
	CacheTTL        time.Duration // How long a cached trend stays fresh
	RateLimit       float64       // Requests per second
	RateLimitBurst  int           // Maximum burst size for rate limiting
	ProjectionSteps int           // Default steps of a manual projection
	HeatmapCellDeg  float64       // Default heatmap cell size in degrees
	Zones           int           // Default skyline grid size
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		CacheSize:       1000,
		CacheTTL:        5 * time.Second,
		RateLimit:       20,
		RateLimitBurst:  40,
		ProjectionSteps: 5,
		HeatmapCellDeg:  0.05,
		Zones:           4,
	}
}

const maxProjectionSteps = 100

// Server wires handlers to the dashboard, chat and history backends. chat and
// repo may be nil when those features are disabled.
type Server struct {
	dashboard DashboardService
	chat      ChatService
	repo      database.MetricRepository
	validator *TrendValidator
	logger    *logrus.Logger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	cache     *middleware.ResponseCache
	limiter   *rate.Limiter
	config    ServerConfig
}

func NewServer(
	dash DashboardService,
	chat ChatService,
	repo database.MetricRepository,
	logger *logrus.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	config ServerConfig,
) (*Server, error) {
	defaults := DefaultServerConfig()
	if config.CacheSize <= 0 {
		config.CacheSize = defaults.CacheSize
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	if config.ProjectionSteps <= 0 {
		config.ProjectionSteps = defaults.ProjectionSteps
	}
	if config.HeatmapCellDeg <= 0 {
		config.HeatmapCellDeg = defaults.HeatmapCellDeg
	}
	if config.Zones <= 0 {
		config.Zones = defaults.Zones
	}

	cache, err := middleware.NewResponseCache(config.CacheSize, config.CacheTTL)
	if err != nil {
		return nil, err
	}
	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
		if config.RateLimitBurst < 1 {
			config.RateLimitBurst = int(config.RateLimit) + 1
		}
	}

	return &Server{
		dashboard: dash,
		chat:      chat,
		repo:      repo,
		validator: NewTrendValidator(dashboard.IsMetric),
		logger:    logger,
		metrics:   m,
		gatherer:  gatherer,
		cache:     cache,
		limiter:   rate.NewLimiter(limit, config.RateLimitBurst),
		config:    config,
	}, nil
}

// Handler builds the routed handler with the full middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	s.handle(mux, "GET /api/dashboard", s.getDashboard)
	s.handle(mux, "GET /api/dashboard/{section}", s.getSection)
	s.handle(mux, "GET /api/nodes", s.getNodes)
	s.handle(mux, "GET /api/heatmap", s.getHeatmap)
	s.handle(mux, "GET /api/zones", s.getZones)
	s.handle(mux, "GET /api/trends", s.getTrends, s.cache.Middleware)
	s.handle(mux, "GET /api/health", s.getHealth)

	s.handle(mux, "POST /api/actions/simulate", s.postSimulate)
	s.handle(mux, "POST /api/actions/emergency", s.postEmergency)
	s.handle(mux, "POST /api/actions/signal", s.postSignal)
	s.handle(mux, "POST /api/actions/refresh", s.postRefresh)
	s.handle(mux, "POST /api/chat", s.postChat)

	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// request id first, rate limit early, then log everything that got through
	return middleware.RequestID(middleware.RateLimit(s.limiter)(middleware.Logging(s.logger)(mux)))
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc, extra ...func(http.Handler) http.Handler) {
	var handler http.Handler = h
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}
	if s.metrics != nil {
		handler = middleware.Metrics(s.metrics, pattern)(handler)
	}
	mux.Handle(pattern, handler)
}
