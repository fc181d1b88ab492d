package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
server:
  host: "127.0.0.1"
  http_port: 9090
  grpc_port: 9091

upstream:
  simulation_url: "http://sim:8000"
  governance_url: "http://gov:8050"
  timeout: 3s

poller:
  interval: 10s
  override_window: 1m

history:
  driver: "postgres"
  dsn: "host=db user=twin dbname=twin sslmode=disable"
  retention: 72h

logging:
  level: "debug"
  format: "text"
`)

	config, err := Load(configPath)
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 9090, config.Server.HTTPPort)
	assert.Equal(t, 9091, config.Server.GRPCPort)
	assert.Equal(t, "http://sim:8000", config.Upstream.SimulationURL)
	assert.Equal(t, "http://gov:8050", config.Upstream.GovernanceURL)
	assert.Equal(t, 3*time.Second, config.Upstream.Timeout)
	assert.Equal(t, 10*time.Second, config.Poller.Interval)
	assert.Equal(t, time.Minute, config.Poller.OverrideWindow)
	assert.Equal(t, 54*time.Second, config.PollTimeout())
	assert.Equal(t, "postgres", config.History.Driver)
	assert.Equal(t, 72*time.Hour, config.History.Retention)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "text", config.Logging.Format)
}

func TestLoadDefaults(t *testing.T) {
	configPath := writeConfig(t, `
upstream:
  simulation_url: "http://sim:8000"
`)

	config, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.HTTPPort)
	assert.Equal(t, 50051, config.Server.GRPCPort)
	assert.Equal(t, 5*time.Second, config.Poller.Interval)
	assert.Equal(t, 30*time.Second, config.Poller.OverrideWindow)
	assert.Equal(t, 5*time.Second, config.Upstream.Timeout)
	assert.Equal(t, "sqlite", config.History.Driver)
	assert.Equal(t, "json", config.Logging.Format)
	assert.Equal(t, "high", config.Notify.MinSeverity)
	assert.Equal(t, 5, config.Chat.ProjectionSteps)
}

func TestLoadWithEnvExpansion(t *testing.T) {
	t.Setenv("APP_SIMULATION_URL", "http://envsim:8000")
	t.Setenv("APP_HTTP_PORT", "8181")

	configPath := writeConfig(t, `
server:
  http_port: $APP_HTTP_PORT
upstream:
  simulation_url: $APP_SIMULATION_URL
`)

	config, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://envsim:8000", config.Upstream.SimulationURL)
	assert.Equal(t, 8181, config.Server.HTTPPort)
}

func TestLoadWithPrefixedEnvOverride(t *testing.T) {
	t.Setenv("TWIN_UPSTREAM_GOVERNANCE_URL", "http://override:8050")
	t.Setenv("TWIN_LOGGING_LEVEL", "warn")

	configPath := writeConfig(t, `
upstream:
  governance_url: "http://gov:8050"
logging:
  level: "info"
`)

	config, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://override:8050", config.Upstream.GovernanceURL)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	configPath := writeConfig(t, `
history:
  driver: "mongo"
`)
	_, err = Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported history driver")

	configPath = writeConfig(t, `
poller:
  interval: 0s
`)
	_, err = Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poller.interval must be positive")
}

func TestPollTimeout(t *testing.T) {
	config := &Config{
		Upstream: UpstreamConfig{Timeout: 5 * time.Second},
	}
	// every call of a full poll can use its whole timeout
	assert.Equal(t, 90*time.Second, config.PollTimeout())

	config.Poller.Timeout = 20 * time.Second
	assert.Equal(t, 20*time.Second, config.PollTimeout())
}
