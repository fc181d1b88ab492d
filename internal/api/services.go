package api

import (
	"context"

	"github.com/etwin/twinboard/internal/models"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// SimulationService is the subset of the simulation API the dashboard consumes.
type SimulationService interface {
	State(ctx context.Context) (*models.StateSnapshot, error)
	Climate(ctx context.Context) (*models.ClimateReading, error)
	Water(ctx context.Context) (*models.WaterReading, error)
	Alerts(ctx context.Context) ([]models.Alert, error)
	History(ctx context.Context) ([]models.SimulationMetrics, error)
	Nodes(ctx context.Context) (*models.NodeList, error)
	Health(ctx context.Context) (*models.Health, error)
	Simulate(ctx context.Context, req models.PolicyRequest) (*models.SimulationResult, error)
	PolicyChat(ctx context.Context, req models.ChatRequest) (*models.ChatAnalysis, error)
	UpdateDigitalTwin(ctx context.Context, update models.SignalUpdate) (*models.UpdateAck, error)
}

// GovernanceService is the subset of the governance API the dashboard consumes.
type GovernanceService interface {
	State(ctx context.Context) (*models.StateSnapshot, error)
	Climate(ctx context.Context) (*models.ClimateReading, error)
	Water(ctx context.Context) (*models.WaterReading, error)
	Environment(ctx context.Context) (*models.EnvironmentReading, error)
	Economy(ctx context.Context) (*models.EconomyReading, error)
	Social(ctx context.Context) (*models.SocialReading, error)
	Alerts(ctx context.Context) ([]models.Alert, error)
	Insights(ctx context.Context) (*models.PolicyInsight, error)
	Timeline(ctx context.Context, limit int) ([]models.TimelineEvent, error)
	Forecast(ctx context.Context) (*models.Forecast, error)
	Health(ctx context.Context) (*models.Health, error)
	UpdateDigitalTwin(ctx context.Context, update models.SignalUpdate) (*models.UpdateAck, error)
	RunEmergencySimulation(ctx context.Context) (*models.EmergencyResult, error)
}

var (
	_ SimulationService = (*SimulationClient)(nil)
	_ GovernanceService = (*GovernanceClient)(nil)
)
