package server_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	server "github.com/etwin/twinboard/internal/grpc"
	"github.com/etwin/twinboard/internal/metrics"
	"github.com/etwin/twinboard/internal/models"
)

func startServer(t *testing.T, checker *server.HealthChecker, config server.ServerConfig, m *metrics.Metrics) grpc_health_v1.HealthClient {
	t.Helper()
	logger, _ := test.NewNullLogger()

	srv, err := server.SetupServer(checker, config, logger, m)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return grpc_health_v1.NewHealthClient(conn)
}

func dashboardWith(sim, gov bool) *models.Dashboard {
	return &models.Dashboard{
		Simulation: models.ServiceStatus{Online: sim},
		Governance: models.ServiceStatus{Online: gov},
	}
}

func TestHealthCheck(t *testing.T) {
	checker := server.NewHealthChecker()
	client := startServer(t, checker, server.ServerConfig{}, nil)
	ctx := context.Background()

	_, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err))

	require.NoError(t, checker.Observe(ctx, dashboardWith(true, false)))

	tests := []struct {
		service string
		want    grpc_health_v1.HealthCheckResponse_ServingStatus
	}{
		{server.ServiceOverall, grpc_health_v1.HealthCheckResponse_SERVING},
		{server.ServiceSimulation, grpc_health_v1.HealthCheckResponse_SERVING},
		{server.ServiceGovernance, grpc_health_v1.HealthCheckResponse_NOT_SERVING},
	}
	for _, tt := range tests {
		resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: tt.service})
		require.NoError(t, err)
		assert.Equal(t, tt.want, resp.Status, "service %q", tt.service)
	}

	_, err = client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "weather"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealthBothOffline(t *testing.T) {
	checker := server.NewHealthChecker()
	client := startServer(t, checker, server.ServerConfig{}, nil)
	ctx := context.Background()

	require.NoError(t, checker.Observe(ctx, dashboardWith(false, false)))
	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)
}

func TestHealthWatch(t *testing.T) {
	checker := server.NewHealthChecker()
	client := startServer(t, checker, server.ServerConfig{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stream, err := client.Watch(ctx, &grpc_health_v1.HealthCheckRequest{Service: server.ServiceGovernance})
	require.NoError(t, err)

	resp, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN, resp.Status)

	require.NoError(t, checker.Observe(ctx, dashboardWith(true, true)))
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)

	checker.Shutdown()
	resp, err = stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)

	// updates after shutdown are ignored
	require.NoError(t, checker.Observe(ctx, dashboardWith(true, true)))
	check, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: server.ServiceGovernance})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check.Status)
}

func TestSetupServerRateLimitAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	checker := server.NewHealthChecker()
	checker.SetServingStatus(server.ServiceOverall, grpc_health_v1.HealthCheckResponse_SERVING)
	client := startServer(t, checker, server.ServerConfig{RateLimit: 0.001, RateLimitBurst: 1}, m)
	ctx := context.Background()

	_, err = client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)

	_, err = client.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("grpc", "Check", codes.OK.String())))
}
