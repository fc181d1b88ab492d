package api

import (
	"context"
	"errors"
	"time"

	"github.com/etwin/twinboard/internal/models"
)

// SimulationClient calls the GNN simulation service.
type SimulationClient struct {
	*Client
	chatTimeout time.Duration
}

// NewSimulationClient builds a client; chatTimeout bounds the slower POST endpoints.
func NewSimulationClient(baseURL string, timeout, chatTimeout time.Duration, opts ...Option) *SimulationClient {
	if chatTimeout <= 0 {
		chatTimeout = timeout
	}
	return &SimulationClient{
		Client:      NewClient(baseURL, timeout, opts...),
		chatTimeout: chatTimeout,
	}
}

func (c *SimulationClient) State(ctx context.Context) (*models.StateSnapshot, error) {
	var out models.StateSnapshot
	if err := c.getJSON(ctx, "/api/state/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SimulationClient) Climate(ctx context.Context) (*models.ClimateReading, error) {
	var out models.ClimateReading
	if err := c.getJSON(ctx, "/api/signals/climate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SimulationClient) Water(ctx context.Context) (*models.WaterReading, error) {
	var out models.WaterReading
	if err := c.getJSON(ctx, "/api/systems/water", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SimulationClient) Alerts(ctx context.Context) ([]models.Alert, error) {
	var out struct {
		Alerts []models.Alert `json:"alerts"`
	}
	if err := c.getJSON(ctx, "/api/alerts/recent", nil, &out); err != nil {
		return nil, err
	}
	return out.Alerts, nil
}

// History returns every step the engine has recorded since it started.
func (c *SimulationClient) History(ctx context.Context) ([]models.SimulationMetrics, error) {
	var out struct {
		History []models.SimulationMetrics `json:"history"`
	}
	if err := c.getJSON(ctx, "/api/history", nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

func (c *SimulationClient) Nodes(ctx context.Context) (*models.NodeList, error) {
	var out models.NodeList
	if err := c.getJSON(ctx, "/api/nodes", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SimulationClient) Health(ctx context.Context) (*models.Health, error) {
	var out models.Health
	if err := c.getJSON(ctx, "/api/meta/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Simulate advances the engine req.Steps times under req.Policy.
func (c *SimulationClient) Simulate(ctx context.Context, req models.PolicyRequest) (*models.SimulationResult, error) {
	if req.Steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}
	var out models.SimulationResult
	if err := c.postJSON(ctx, "/api/simulate", req, &out, c.chatTimeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SimulationClient) PolicyChat(ctx context.Context, req models.ChatRequest) (*models.ChatAnalysis, error) {
	var out models.ChatAnalysis
	if err := c.postJSON(ctx, "/api/policy-chat", req, &out, c.chatTimeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SimulationClient) UpdateDigitalTwin(ctx context.Context, update models.SignalUpdate) (*models.UpdateAck, error) {
	var out models.UpdateAck
	if err := c.postJSON(ctx, "/update-digital-twin", update, &out, c.timeout); err != nil {
		return nil, err
	}
	return &out, nil
}
