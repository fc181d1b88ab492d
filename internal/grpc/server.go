// Package server exposes the poller's view of both upstream services over the
// standard gRPC health protocol.
package server

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/etwin/twinboard/internal/metrics"
	"github.com/etwin/twinboard/internal/middleware"
)

// ServerConfig holds configuration options for the gRPC server
type ServerConfig struct {
	RateLimit      float64 // Requests per second
	RateLimitBurst int     // Maximum burst size for rate limiting
	Reflection     bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		RateLimit:      5.0, // 5 requests per second
		RateLimitBurst: 10,  // Burst of 10 requests
		Reflection:     true,
	}
}

// SetupServer initializes and configures the gRPC server with all middleware.
// m may be nil to skip request metrics.
func SetupServer(checker *HealthChecker, config ServerConfig, logger *logrus.Logger, m *metrics.Metrics) (*grpc.Server, error) {
	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
		if config.RateLimitBurst < 1 {
			config.RateLimitBurst = int(config.RateLimit) + 1
		}
	}
	limiter := rate.NewLimiter(limit, config.RateLimitBurst)

	interceptors := []grpc.UnaryServerInterceptor{
		middleware.ContextMiddleware,                   // Add request ID first
		middleware.NewRateLimitingInterceptor(limiter), // Rate limit early
		middleware.NewLoggingInterceptor(logger),       // Log all requests (with request ID)
	}
	if m != nil {
		interceptors = append(interceptors, middleware.NewMetricsInterceptor(m))
	}

	server := grpc.NewServer(
		grpc.UnaryInterceptor(chainUnaryInterceptors(interceptors...)),
	)

	grpc_health_v1.RegisterHealthServer(server, checker)
	if config.Reflection {
		reflection.Register(server)
	}

	return server, nil
}

// chainUnaryInterceptors creates a single interceptor from multiple interceptors
func chainUnaryInterceptors(interceptors ...grpc.UnaryServerInterceptor) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		chain := handler
		for i := len(interceptors) - 1; i >= 0; i-- {
			interceptor := interceptors[i]
			next := chain
			chain = func(ctx context.Context, req interface{}) (interface{}, error) {
				return interceptor(ctx, req, info, next)
			}
		}
		return chain(ctx, req)
	}
}
