package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Poller   PollerConfig   `mapstructure:"poller"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

type ServerConfig struct {
	Host           string  `mapstructure:"host"`
	HTTPPort       int     `mapstructure:"http_port"`
	GRPCPort       int     `mapstructure:"grpc_port"`
	CacheSize      int     `mapstructure:"cache_size"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// UpstreamConfig points at the two external services.
type UpstreamConfig struct {
	SimulationURL  string        `mapstructure:"simulation_url"`
	GovernanceURL  string        `mapstructure:"governance_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ChatTimeout    time.Duration `mapstructure:"chat_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// PollerConfig tunes the scheduled poll. A zero Timeout gives every upstream call
// of one poll its full per-request timeout.
type PollerConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	OverrideWindow time.Duration `mapstructure:"override_window"`
	TimelineLimit  int           `mapstructure:"timeline_limit"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// CallsPerPoll is the number of sequential upstream requests in one full poll:
// 7 simulation endpoints and 11 governance endpoints.
const CallsPerPoll = 18

// PollTimeout bounds one full poll of both services.
func (c *Config) PollTimeout() time.Duration {
	if c.Poller.Timeout > 0 {
		return c.Poller.Timeout
	}
	return c.Upstream.Timeout * CallsPerPoll
}

// HistoryConfig selects the metric history store. Driver "none" or "" disables it.
type HistoryConfig struct {
	Driver        string        `mapstructure:"driver"`
	DSN           string        `mapstructure:"dsn"`
	Retention     time.Duration `mapstructure:"retention"`
	PruneSchedule string        `mapstructure:"prune_schedule"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ChatConfig struct {
	OpenAIAPIKey    string        `mapstructure:"openai_api_key"`
	Model           string        `mapstructure:"model"`
	ProjectionSteps int           `mapstructure:"projection_steps"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	CacheSize       int           `mapstructure:"cache_size"`
}

// NotifyConfig enables Telegram alert pushes when a token is set.
type NotifyConfig struct {
	TelegramToken  string `mapstructure:"telegram_token"`
	TelegramChatID int64  `mapstructure:"telegram_chat_id"`
	MinSeverity    string `mapstructure:"min_severity"`
}

// Load reads configuration from file and environment variables.
//
// ${VAR} references inside the file are expanded first; afterwards every key can
// be overridden by a TWIN_ prefixed variable (server.http_port -> TWIN_SERVER_HTTP_PORT).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// First unmarshal into a map to handle type conversions
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw config: %w", err)
	}
	if rawConfig == nil {
		rawConfig = map[string]interface{}{}
	}

	data, err = yaml.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw config: %w", err)
	}

	expandedData := os.ExpandEnv(string(data))

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TWIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewBufferString(expandedData)); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Upstream.SimulationURL == "" && c.Upstream.GovernanceURL == "" {
		return fmt.Errorf("at least one of upstream.simulation_url and upstream.governance_url is required")
	}
	if c.Poller.Interval <= 0 {
		return fmt.Errorf("poller.interval must be positive, got %s", c.Poller.Interval)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive, got %s", c.Upstream.Timeout)
	}
	switch c.History.Driver {
	case "", "none", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported history driver: %s", c.History.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.cache_size", 1000)
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_limit_burst", 40)

	v.SetDefault("upstream.simulation_url", "http://localhost:8000")
	v.SetDefault("upstream.governance_url", "http://localhost:8050")
	v.SetDefault("upstream.timeout", 5*time.Second)
	v.SetDefault("upstream.chat_timeout", 30*time.Second)
	v.SetDefault("upstream.rate_limit", 10.0)
	v.SetDefault("upstream.rate_limit_burst", 20)

	v.SetDefault("poller.interval", 5*time.Second)
	v.SetDefault("poller.override_window", 30*time.Second)
	v.SetDefault("poller.timeline_limit", 20)
	v.SetDefault("poller.timeout", 0)

	v.SetDefault("history.driver", "sqlite")
	v.SetDefault("history.dsn", "data/twinboard.db")
	v.SetDefault("history.retention", 30*24*time.Hour)
	v.SetDefault("history.prune_schedule", "0 3 * * *")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("chat.model", "gpt-4o")
	v.SetDefault("chat.projection_steps", 5)
	v.SetDefault("chat.cache_ttl", 2*time.Minute)
	v.SetDefault("chat.cache_size", 256)

	v.SetDefault("notify.telegram_token", "")
	v.SetDefault("notify.telegram_chat_id", 0)
	v.SetDefault("notify.min_severity", "high")
}
