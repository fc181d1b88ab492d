package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/etwin/twinboard/internal/models"
)

// GovernanceClient calls the policy/signal governance service.
type GovernanceClient struct {
	*Client
}

func NewGovernanceClient(baseURL string, timeout time.Duration, opts ...Option) *GovernanceClient {
	return &GovernanceClient{Client: NewClient(baseURL, timeout, opts...)}
}

func (c *GovernanceClient) State(ctx context.Context) (*models.StateSnapshot, error) {
	var out models.StateSnapshot
	if err := c.getJSON(ctx, "/api/state/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) Climate(ctx context.Context) (*models.ClimateReading, error) {
	var out models.ClimateReading
	if err := c.getJSON(ctx, "/api/signals/climate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) Water(ctx context.Context) (*models.WaterReading, error) {
	var out models.WaterReading
	if err := c.getJSON(ctx, "/api/systems/water", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) Environment(ctx context.Context) (*models.EnvironmentReading, error) {
	var out models.EnvironmentReading
	if err := c.getJSON(ctx, "/api/systems/environment", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) Economy(ctx context.Context) (*models.EconomyReading, error) {
	var out models.EconomyReading
	if err := c.getJSON(ctx, "/api/systems/economy", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) Social(ctx context.Context) (*models.SocialReading, error) {
	var out models.SocialReading
	if err := c.getJSON(ctx, "/api/systems/social", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) Alerts(ctx context.Context) ([]models.Alert, error) {
	var out struct {
		Alerts []models.Alert `json:"alerts"`
	}
	if err := c.getJSON(ctx, "/api/alerts/recent", nil, &out); err != nil {
		return nil, err
	}
	return out.Alerts, nil
}

func (c *GovernanceClient) Insights(ctx context.Context) (*models.PolicyInsight, error) {
	var out models.PolicyInsight
	if err := c.getJSON(ctx, "/api/insights/latest", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Timeline returns at most limit events, newest first. limit <= 0 uses the upstream default.
func (c *GovernanceClient) Timeline(ctx context.Context, limit int) ([]models.TimelineEvent, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	var out struct {
		Events []models.TimelineEvent `json:"events"`
	}
	if err := c.getJSON(ctx, "/api/timeline", query, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *GovernanceClient) Forecast(ctx context.Context) (*models.Forecast, error) {
	var out models.Forecast
	if err := c.getJSON(ctx, "/api/forecast/7-cycle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) Health(ctx context.Context) (*models.Health, error) {
	var out models.Health
	if err := c.getJSON(ctx, "/api/meta/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) UpdateDigitalTwin(ctx context.Context, update models.SignalUpdate) (*models.UpdateAck, error) {
	var out models.UpdateAck
	if err := c.postJSON(ctx, "/update-digital-twin", update, &out, c.timeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *GovernanceClient) RunEmergencySimulation(ctx context.Context) (*models.EmergencyResult, error) {
	var out models.EmergencyResult
	if err := c.postJSON(ctx, "/run-emergency-simulation", nil, &out, c.timeout); err != nil {
		return nil, err
	}
	return &out, nil
}
