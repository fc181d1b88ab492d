//go:build integration
// +build integration

package integration_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/etwin/twinboard/internal/api"
	"github.com/etwin/twinboard/internal/chat"
	"github.com/etwin/twinboard/internal/dashboard"
	"github.com/etwin/twinboard/internal/database"
	server "github.com/etwin/twinboard/internal/grpc"
	"github.com/etwin/twinboard/internal/history"
	"github.com/etwin/twinboard/internal/metrics"
	"github.com/etwin/twinboard/internal/models"
	"github.com/etwin/twinboard/internal/rest"
)

const bufSize = 1024 * 1024

type environment struct {
	api      *httptest.Server
	poller   *dashboard.Poller
	checker  *server.HealthChecker
	health   grpc_health_v1.HealthClient
	simCalls *int32
}

// fakeSimulation answers the simulation endpoints the poller reads.
func fakeSimulation(t *testing.T, calls *int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/state/current":
			w.Write([]byte(`{"timestamp":"2026-01-01T00:00:00","location":"Chennai","sdg_composite_score":72.5,"system_stability_score":88.0,"cycle_id":1204}`))
		case "/api/signals/climate":
			w.Write([]byte(`{"temperature_current":34.1,"temperature_7_cycle_avg":32.0,"temperature_anomaly":2.1,"precipitation_current":1.5,"climate_stress_factor":0.4,"anomaly_detected":false,"trend":"rising"}`))
		case "/api/systems/water":
			w.Write([]byte(`{"reservoir_level_percent":64.0,"daily_inflow":1.1,"daily_outflow":1.3,"water_stress_index":0.36,"days_until_critical":40,"status":"normal"}`))
		case "/api/alerts/recent":
			w.Write([]byte(`{"alerts":[{"id":1,"type":"heat","severity":"high","message":"Heat spike","timestamp":"t"}]}`))
		case "/api/history":
			w.Write([]byte(`{"history":[{"timestep":1,"total_emissions":100,"composite_sdg_score":70},{"timestep":2,"total_emissions":104,"composite_sdg_score":71}]}`))
		case "/api/nodes":
			w.Write([]byte(`{"timestep":2,"nodes":[{"id":0,"lat":13.05,"lon":80.21,"stress":0.3,"emissions":12,"vulnerability":0.2},{"id":1,"lat":13.10,"lon":80.29,"stress":0.9,"emissions":30,"vulnerability":0.7}]}`))
		case "/api/meta/health":
			w.Write([]byte(`{"status":"ok","gnn_engine":"ready"}`))
		case "/api/simulate":
			var req models.PolicyRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			results := make([]models.SimulationMetrics, req.Steps)
			for i := range results {
				results[i] = models.SimulationMetrics{Timestep: 3 + i, CompositeSDGScore: 72 + float64(i)}
			}
			json.NewEncoder(w).Encode(models.SimulationResult{Status: "success", Results: results})
		case "/api/policy-chat":
			w.Write([]byte(`{"analysis":"A carbon tax lowers emissions."}`))
		case "/update-digital-twin":
			w.Write([]byte(`{"status":"success","cycle":1205}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

// unreachable returns the URL of a server that is no longer listening.
func unreachable() string {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func setupEnvironment(t *testing.T) *environment {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	var calls int32
	sim := fakeSimulation(t, &calls)
	t.Cleanup(sim.Close)

	registry := prometheus.NewRegistry()
	m, err := metrics.New(registry)
	require.NoError(t, err)

	repo, err := database.NewSQLiteRepo(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	simClient := api.NewSimulationClient(sim.URL, 2*time.Second, 2*time.Second)
	govClient := api.NewGovernanceClient(unreachable(), 2*time.Second)

	poller := dashboard.NewPoller(simClient, govClient, dashboard.NewStore(), logger, m, dashboard.PollerConfig{
		TimelineLimit:  10,
		OverrideWindow: time.Minute,
		PollTimeout:    10 * time.Second,
	})
	checker := server.NewHealthChecker()
	poller.AddObserver(checker)
	poller.AddObserver(history.NewRecorder(repo, logger, 24*time.Hour))

	assistant, err := chat.NewAssistant(simClient, nil, logger, chat.Config{ProjectionSteps: 3})
	require.NoError(t, err)

	restServer, err := rest.NewServer(poller, assistant, repo, logger, m, registry, rest.ServerConfig{RateLimit: 0})
	require.NoError(t, err)
	apiServer := httptest.NewServer(restServer.Handler())
	t.Cleanup(apiServer.Close)

	grpcServer, err := server.SetupServer(checker, server.ServerConfig{}, logger, m)
	require.NoError(t, err)
	lis := bufconn.Listen(bufSize)
	go grpcServer.Serve(lis)
	t.Cleanup(grpcServer.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &environment{
		api:      apiServer,
		poller:   poller,
		checker:  checker,
		health:   grpc_health_v1.NewHealthClient(conn),
		simCalls: &calls,
	}
}

func getJSON(t *testing.T, target string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, target, body string, out interface{}) int {
	t.Helper()
	resp, err := http.Post(target, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestDashboardEndToEnd(t *testing.T) {
	env := setupEnvironment(t)
	ctx := context.Background()

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, env.api.URL+"/api/dashboard", nil))

	require.NoError(t, env.poller.Tick(ctx))

	var d models.Dashboard
	require.Equal(t, http.StatusOK, getJSON(t, env.api.URL+"/api/dashboard", &d))
	assert.True(t, d.Simulation.Online)
	assert.False(t, d.Governance.Online)
	assert.Equal(t, 1204, d.State.CycleID)
	assert.Equal(t, models.SourceSimulation, d.Sources[models.SectionState])
	assert.Equal(t, models.SourceDerived, d.Sources[models.SectionEconomy])
	assert.NotNil(t, d.Economy)

	var health rest.HealthResponse
	require.Equal(t, http.StatusOK, getJSON(t, env.api.URL+"/api/health", &health))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "ok", health.History)

	resp, err := env.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: server.ServiceGovernance})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)
	resp, err = env.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestTrendsFromRecordedHistory(t *testing.T) {
	env := setupEnvironment(t)
	ctx := context.Background()

	require.NoError(t, env.poller.Tick(ctx))
	require.NoError(t, env.poller.Tick(ctx))

	now := time.Now().UTC()
	q := url.Values{}
	q.Set("metric", dashboard.MetricSDGComposite)
	q.Set("start", now.Add(-time.Hour).Format(time.RFC3339))
	q.Set("end", now.Add(time.Hour).Format(time.RFC3339))
	q.Set("window", "1d")
	q.Set("aggregation", "avg")

	var trend rest.TrendResponse
	require.Equal(t, http.StatusOK, getJSON(t, env.api.URL+"/api/trends?"+q.Encode(), &trend))
	require.NotEmpty(t, trend.Points)
	assert.InDelta(t, 72.5, trend.Points[len(trend.Points)-1].Value, 0.001)

	q.Set("window", "2h")
	assert.Equal(t, http.StatusBadRequest, getJSON(t, env.api.URL+"/api/trends?"+q.Encode(), nil))
}

func TestManualActionsOverrideRefresh(t *testing.T) {
	env := setupEnvironment(t)
	ctx := context.Background()
	require.NoError(t, env.poller.Tick(ctx))

	var projected models.Dashboard
	require.Equal(t, http.StatusOK, postJSON(t, env.api.URL+"/api/actions/simulate", `{"steps":4,"policy":{"carbon_tax":0.3}}`, &projected))
	require.NotNil(t, projected.Projection)
	assert.Len(t, projected.Projection.Steps, 4)

	// the scheduled poll leaves the projection on screen
	before := atomic.LoadInt32(env.simCalls)
	require.NoError(t, env.poller.Tick(ctx))
	assert.Equal(t, before, atomic.LoadInt32(env.simCalls))

	var d models.Dashboard
	require.Equal(t, http.StatusOK, getJSON(t, env.api.URL+"/api/dashboard", &d))
	assert.NotNil(t, d.Projection)

	var signal rest.SignalResponse
	require.Equal(t, http.StatusOK, postJSON(t, env.api.URL+"/api/actions/signal", `{"temp":39.5,"precip":0}`, &signal))
	assert.Equal(t, 1205, signal.Acks["simulation"].Cycle)
	assert.Nil(t, signal.Acks["governance"])

	assert.Equal(t, http.StatusBadGateway, postJSON(t, env.api.URL+"/api/actions/emergency", "", nil))
}

func TestMapAndChat(t *testing.T) {
	env := setupEnvironment(t)
	ctx := context.Background()
	require.NoError(t, env.poller.Tick(ctx))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, env.api.URL+"/api/heatmap?cell=0.05", &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.NotEmpty(t, fc.Features)

	var zones []map[string]interface{}
	require.Equal(t, http.StatusOK, getJSON(t, env.api.URL+"/api/zones?n=2", &zones))
	assert.NotEmpty(t, zones)

	var reply models.ChatReply
	require.Equal(t, http.StatusOK, postJSON(t, env.api.URL+"/api/chat", `{"question":"What if we add a 30% carbon tax?"}`, &reply))
	assert.Equal(t, "A carbon tax lowers emissions.", reply.Analysis)
	assert.Equal(t, chat.SourceSimulation, reply.Source)
	assert.False(t, reply.Offline)
}
