package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/etwin/twinboard/internal/api"
	"github.com/etwin/twinboard/internal/chat"
	"github.com/etwin/twinboard/internal/config"
	"github.com/etwin/twinboard/internal/dashboard"
	"github.com/etwin/twinboard/internal/database"
	server "github.com/etwin/twinboard/internal/grpc"
	"github.com/etwin/twinboard/internal/history"
	"github.com/etwin/twinboard/internal/metrics"
	"github.com/etwin/twinboard/internal/notify"
	"github.com/etwin/twinboard/internal/rest"
	"github.com/etwin/twinboard/internal/scheduler"
)

// Command twinboard polls the city digital-twin simulation and governance services,
// merges their answers into one dashboard and serves it over HTTP, with gRPC health.
//
// Usage:
//
//	twinboard [flags]
//
// The flags are:
//
//	-config string
//	      path to config file (default "config.yaml")
//	-env string
//	      path to a .env file (default ".env")
//	-http-port int
//	      overrides server.http_port
//	-grpc-port int
//	      overrides server.grpc_port
//	-cache-size int
//	      overrides server.cache_size
//	-rate-limit float
//	      overrides server.rate_limit
//	-rate-limit-burst int
//	      overrides server.rate_limit_burst
func main() {
	flags := parseFlags()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(flags.EnvFile); err != nil {
		logger.WithError(err).Warn("No .env file loaded")
	}

	appConfig, err := config.Load(flags.ConfigPath)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	flags.apply(appConfig)
	configureLogger(logger, appConfig.Logging)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, appConfig, logger); err != nil {
		logger.Fatalf("Service error: %v", err)
	}
}

func run(ctx context.Context, appConfig *config.Config, logger *logrus.Logger) error {
	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	sim, gov := createClients(appConfig.Upstream)
	pollTimeout := appConfig.PollTimeout()

	poller := dashboard.NewPoller(sim, gov, dashboard.NewStore(), logger, m, dashboard.PollerConfig{
		TimelineLimit:  appConfig.Poller.TimelineLimit,
		OverrideWindow: appConfig.Poller.OverrideWindow,
		PollTimeout:    pollTimeout,
	})

	checker := server.NewHealthChecker()
	poller.AddObserver(checker)

	repo, err := createRepository(appConfig.History)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	var recorder *history.Recorder
	if repo != nil {
		defer repo.Close()
		recorder = history.NewRecorder(repo, logger, appConfig.History.Retention)
		poller.AddObserver(recorder)
	}

	if appConfig.Notify.TelegramToken != "" {
		notifier, err := notify.NewTelegramNotifier(
			appConfig.Notify.TelegramToken,
			appConfig.Notify.TelegramChatID,
			appConfig.Notify.MinSeverity,
			logger,
		)
		if err != nil {
			// alerts are optional; the dashboard keeps running without them
			logger.WithError(err).Error("Failed to start Telegram notifier")
		} else {
			poller.AddObserver(notifier)
		}
	}

	assistant, err := createAssistant(sim, appConfig.Chat, logger)
	if err != nil {
		return fmt.Errorf("failed to create chat assistant: %w", err)
	}

	sched := scheduler.NewScheduler(ctx, logger)
	if err := sched.AddJob("poll", scheduler.Every(appConfig.Poller.Interval), pollTimeout, poller.Tick); err != nil {
		return err
	}
	if recorder != nil && appConfig.History.Retention > 0 {
		if err := sched.AddJob("prune", appConfig.History.PruneSchedule, time.Minute, recorder.Prune); err != nil {
			return err
		}
	}

	restServer, err := rest.NewServer(poller, assistant, repo, logger, m, registry, rest.ServerConfig{
		CacheSize:       appConfig.Server.CacheSize,
		RateLimit:       appConfig.Server.RateLimit,
		RateLimitBurst:  appConfig.Server.RateLimitBurst,
		ProjectionSteps: appConfig.Chat.ProjectionSteps,
	})
	if err != nil {
		return fmt.Errorf("failed to setup http server: %w", err)
	}
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.HTTPPort),
		Handler:           restServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer, err := server.SetupServer(checker, server.ServerConfig{
		RateLimit:      appConfig.Server.RateLimit,
		RateLimitBurst: appConfig.Server.RateLimitBurst,
		Reflection:     true,
	}, logger, m)
	if err != nil {
		return fmt.Errorf("failed to setup grpc server: %w", err)
	}
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", appConfig.Server.Host, appConfig.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	// First poll before serving so widgets never see an empty dashboard.
	_ = sched.RunNow("poll", pollTimeout, poller.Tick)
	sched.Start()

	errChan := make(chan error, 2)
	go func() {
		logger.WithFields(logrus.Fields{"addr": httpServer.Addr}).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()
	go func() {
		logger.WithFields(logrus.Fields{"addr": lis.Addr().String()}).Info("Starting gRPC server")
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("grpc server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Context canceled, initiating shutdown")
	case sig := <-sigChan:
		logger.WithFields(logrus.Fields{"signal": sig.String()}).Info("Received signal, initiating shutdown")
	case runErr = <-errChan:
	}

	shutdown(httpServer, grpcServer, checker, sched, logger)
	return runErr
}

func shutdown(httpServer *http.Server, grpcServer *grpc.Server, checker *server.HealthChecker, sched *scheduler.Scheduler, logger *logrus.Logger) {
	logger.Info("Gracefully stopping servers...")
	checker.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}
	grpcServer.GracefulStop()

	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Timed out waiting for running jobs")
	}
	logger.Info("Servers stopped")
}

// createClients returns nil interfaces for services without a URL so the poller
// reports them offline instead of dialing nowhere.
func createClients(cfg config.UpstreamConfig) (api.SimulationService, api.GovernanceService) {
	opts := []api.Option{api.WithRateLimit(cfg.RateLimit, cfg.RateLimitBurst)}

	var sim api.SimulationService
	if cfg.SimulationURL != "" {
		sim = api.NewSimulationClient(cfg.SimulationURL, cfg.Timeout, cfg.ChatTimeout, opts...)
	}
	var gov api.GovernanceService
	if cfg.GovernanceURL != "" {
		gov = api.NewGovernanceClient(cfg.GovernanceURL, cfg.Timeout, opts...)
	}
	return sim, gov
}

// createRepository opens the history store, or returns nil when history is disabled.
func createRepository(cfg config.HistoryConfig) (database.MetricRepository, error) {
	if cfg.Driver == "" || cfg.Driver == database.DriverNone {
		return nil, nil
	}
	return database.Open(cfg.Driver, cfg.DSN)
}

func createAssistant(sim api.SimulationService, cfg config.ChatConfig, logger *logrus.Logger) (*chat.Assistant, error) {
	var interpreter chat.Interpreter
	if cfg.OpenAIAPIKey != "" {
		oi, err := chat.NewOpenAIInterpreter(cfg.OpenAIAPIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		interpreter = oi
	}
	return chat.NewAssistant(sim, interpreter, logger, chat.Config{
		ProjectionSteps: cfg.ProjectionSteps,
		CacheTTL:        cfg.CacheTTL,
		CacheSize:       cfg.CacheSize,
	})
}

func configureLogger(logger *logrus.Logger, cfg config.LoggingConfig) {
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.WithError(err).Warn("Unknown log level, keeping info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

type Flags struct {
	ConfigPath     string
	EnvFile        string
	HTTPPort       int
	GRPCPort       int
	CacheSize      int
	RateLimit      float64
	RateLimitBurst int
}

func parseFlags() *Flags {
	f := &Flags{}

	flag.StringVar(&f.ConfigPath, "config", "config.yaml", "Path to the config file")
	flag.StringVar(&f.EnvFile, "env", ".env", "Path to a .env file")
	flag.IntVar(&f.HTTPPort, "http-port", 0, "The HTTP server port")
	flag.IntVar(&f.GRPCPort, "grpc-port", 0, "The gRPC server port")
	flag.IntVar(&f.CacheSize, "cache-size", 0, "Size of the trend response cache")
	flag.Float64Var(&f.RateLimit, "rate-limit", 0, "Rate limit in requests per second")
	flag.IntVar(&f.RateLimitBurst, "rate-limit-burst", 0, "Maximum burst size for rate limiting")

	flag.Parse()

	return f
}

// apply overrides config values with flags that were set explicitly.
func (f *Flags) apply(c *config.Config) {
	if f.HTTPPort > 0 {
		c.Server.HTTPPort = f.HTTPPort
	}
	if f.GRPCPort > 0 {
		c.Server.GRPCPort = f.GRPCPort
	}
	if f.CacheSize > 0 {
		c.Server.CacheSize = f.CacheSize
	}
	if f.RateLimit > 0 {
		c.Server.RateLimit = f.RateLimit
	}
	if f.RateLimitBurst > 0 {
		c.Server.RateLimitBurst = f.RateLimitBurst
	}
}
