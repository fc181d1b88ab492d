package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etwin/twinboard/internal/models"
)

func simOnlyReadings() Readings {
	return Readings{
		PolledAt:         time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		SimulationOnline: true,
		SimState: &models.StateSnapshot{
			Timestamp:            "2026-01-01T12:00:00",
			SDGCompositeScore:    72.0,
			SystemStabilityScore: 90.0,
			CycleID:              1100,
		},
		SimClimate: &models.ClimateReading{
			TemperatureCurrent: 33.0,
			TemperatureAnomaly: 2.5,
			AnomalyDetected:    false,
		},
		SimWater: &models.WaterReading{
			ReservoirLevelPercent: 80.0,
			Status:                "normal",
		},
		SimAlerts: []models.Alert{
			{ID: 1, Type: "climate_anomaly", Severity: "high", Message: "Heat", Timestamp: "2026-01-01T11:00:00"},
		},
		History: []models.SimulationMetrics{
			{Timestep: 0, TotalEmissions: 1000, CompositeSDGScore: 70, AverageSocialVulnerability: 0.31},
			{Timestep: 1, TotalEmissions: 1050, CompositeSDGScore: 71, AverageSocialVulnerability: 0.32},
		},
		Nodes: &models.NodeList{Nodes: []models.NodeReading{{ID: 0, Lat: 13.1, Lon: 80.3, Stress: 0.4}}, Timestep: 1},
	}
}

func TestMergeGovernanceWins(t *testing.T) {
	r := simOnlyReadings()
	r.GovernanceOnline = true
	r.GovState = &models.StateSnapshot{Location: "Chennai", SDGCompositeScore: 75, SystemStabilityScore: 88, CycleID: 1001}
	r.GovClimate = &models.ClimateReading{TemperatureCurrent: 30, Trend: "stable"}
	r.Environment = &models.EnvironmentReading{CO2PPM: 418.5, AQI: 40, Trend: "increasing"}
	r.GovAlerts = []models.Alert{
		{ID: 2, Type: "policy_triggered", Severity: "medium", Timestamp: "2026-01-01T11:30:00"},
		{ID: 1, Type: "climate_anomaly", Severity: "high", Timestamp: "2026-01-01T11:00:00"},
	}

	d := Merge(r)

	assert.Equal(t, "Chennai", d.State.Location)
	assert.Equal(t, models.SourceGovernance, d.Sources[models.SectionState])
	assert.Equal(t, 30.0, d.Climate.TemperatureCurrent)
	assert.Equal(t, models.SourceGovernance, d.Sources[models.SectionClimate])
	assert.Equal(t, 418.5, d.Environment.CO2PPM)
	assert.Equal(t, models.SourceGovernance, d.Sources[models.SectionEnvironment])

	// water came only from the simulation side
	assert.Equal(t, models.SourceSimulation, d.Sources[models.SectionWater])
	assert.Equal(t, models.SourceSimulation, d.Sources[models.SectionNodes])

	// alert 1 is reported by both services and must appear once
	require.Len(t, d.Alerts, 2)
	assert.Equal(t, 2, d.Alerts[0].ID)
	assert.Equal(t, 1, d.Alerts[1].ID)

	assert.True(t, d.Simulation.Online)
	assert.True(t, d.Governance.Online)
	assert.Equal(t, r.PolledAt, d.Governance.LastSeen)
}

func TestMergeDerivesWhenGovernanceOffline(t *testing.T) {
	d := Merge(simOnlyReadings())

	assert.False(t, d.Governance.Online)
	assert.True(t, d.Governance.LastSeen.IsZero())

	// partial simulation readings are completed
	require.NotNil(t, d.Climate)
	assert.Equal(t, 30.5, d.Climate.Temperature7CycleAvg)
	assert.Equal(t, 1.15, d.Climate.ClimateStressFactor)
	assert.Equal(t, "rising", d.Climate.Trend)

	require.NotNil(t, d.Water)
	assert.Equal(t, 40, d.Water.DaysUntilCritical)
	assert.Equal(t, 0.2, d.Water.WaterStressIndex)
	assert.Equal(t, 1.2, d.Water.DailyInflow)

	require.NotNil(t, d.State)
	assert.Equal(t, 0.85, d.State.ConfidenceScore)

	require.NotNil(t, d.Environment)
	assert.Equal(t, models.SourceDerived, d.Sources[models.SectionEnvironment])
	assert.Equal(t, 419.0, d.Environment.CO2PPM)
	assert.Equal(t, 0.05, d.Environment.EmissionGrowthRate)
	assert.Equal(t, "increasing", d.Environment.Trend)

	require.NotNil(t, d.Economy)
	assert.Equal(t, 2.4, d.Economy.GDPGrowthRate)
	assert.Equal(t, 0.9, d.Economy.EconomicStabilityScore)

	require.NotNil(t, d.Social)
	assert.Equal(t, 0.32, d.Social.InequalityIndex)
	assert.Equal(t, 0.72, d.Social.GovernanceConfidence)
	// (100 - 90 - 0.2*30) / 20
	assert.Equal(t, 0.2, d.Social.PublicPressureScore)
	assert.Equal(t, 0.0, d.Social.PublicSentimentScore)
	assert.Equal(t, "improving", d.Social.StabilityTrend)

	require.NotNil(t, d.Insights)
	assert.Equal(t, BasePolicy, d.Insights.RecommendedPolicy)
	assert.Equal(t, 7.0, d.Insights.ExpectedSDGDelta)
	assert.Equal(t, "low", d.Insights.RiskLevel)

	require.NotNil(t, d.Forecast)
	assert.Equal(t, []float64{80, 78.8, 77.6, 76.4, 75.2, 74, 72.8}, d.Forecast.ReservoirProjection)
	assert.Equal(t, 419.0, d.Forecast.EmissionProjection[0])
	assert.Equal(t, 421.4, d.Forecast.EmissionProjection[6])
	assert.Equal(t, 0.12, d.Forecast.RiskProbability)

	require.Len(t, d.Timeline, 1)
	assert.Equal(t, "climate_anomaly", d.Timeline[0].RealSignal)
	assert.Equal(t, 1.0, d.Timeline[0].AnomalyScore)
	assert.Equal(t, 1100, d.Timeline[0].CycleID)
	assert.Equal(t, models.SourceDerived, d.Sources[models.SectionTimeline])
}

func TestMergeAnomalyRaisesRisk(t *testing.T) {
	r := simOnlyReadings()
	r.SimClimate.AnomalyDetected = true

	d := Merge(r)

	assert.Equal(t, EmergencyPolicy, d.Insights.RecommendedPolicy)
	assert.Equal(t, "moderate", d.Insights.RiskLevel)
	assert.Equal(t, 0.63, d.Forecast.RiskProbability)
}

func TestMergeLowReservoirKeepsBasePolicy(t *testing.T) {
	r := simOnlyReadings()
	r.SimWater = &models.WaterReading{ReservoirLevelPercent: 35}

	d := Merge(r)

	assert.Equal(t, "warning", d.Water.Status)
	require.NotNil(t, d.Insights)
	assert.Equal(t, BasePolicy, d.Insights.RecommendedPolicy)
	assert.Equal(t, "low", d.Insights.RiskLevel)
	assert.Equal(t, 0.85, d.Insights.Confidence)
}

func TestMergeStabilityTrendFollowsSlopeSign(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"tiny rise", []float64{70, 70.01}, "improving"},
		{"tiny fall", []float64{70, 69.99}, "declining"},
		{"flat", []float64{70, 70, 70}, "stable"},
		{"single entry", []float64{70}, "stable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := simOnlyReadings()
			r.History = nil
			for i, score := range tt.scores {
				r.History = append(r.History, models.SimulationMetrics{Timestep: i, CompositeSDGScore: score})
			}

			d := Merge(r)

			require.NotNil(t, d.Social)
			assert.Equal(t, tt.want, d.Social.StabilityTrend)
		})
	}
}

func TestMergeBothOffline(t *testing.T) {
	d := Merge(Readings{PolledAt: time.Now()})

	assert.False(t, d.Online())
	for _, s := range models.Sections {
		assert.Equal(t, models.SourceOffline, d.Sources[s], s)
	}
	assert.Nil(t, d.State)
	assert.Nil(t, d.Environment)
	assert.Nil(t, d.Forecast)
	assert.NotNil(t, d.Alerts)
	assert.Empty(t, d.Alerts)
	assert.Empty(t, d.Timeline)
}

func TestMergeAlertsCapAndOrder(t *testing.T) {
	var gov []models.Alert
	for i := 0; i < 15; i++ {
		gov = append(gov, models.Alert{ID: i, Timestamp: time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC).Format("2006-01-02T15:04:05")})
	}
	var sim []models.Alert
	for i := 10; i < 25; i++ {
		sim = append(sim, models.Alert{ID: i, Timestamp: time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC).Format("2006-01-02T15:04:05")})
	}

	merged := mergeAlerts(gov, sim)

	require.Len(t, merged, maxAlerts)
	assert.Equal(t, 24, merged[0].ID)
	assert.Equal(t, 5, merged[len(merged)-1].ID)
	seen := map[int]bool{}
	for _, a := range merged {
		assert.False(t, seen[a.ID], "duplicate alert %d", a.ID)
		seen[a.ID] = true
	}
}

func TestValues(t *testing.T) {
	d := Merge(simOnlyReadings())
	v := Values(d)

	assert.Equal(t, 72.0, v[MetricSDGComposite])
	assert.Equal(t, 33.0, v[MetricTemperature])
	assert.Equal(t, 80.0, v[MetricReservoir])
	assert.Equal(t, 0.4, v[MetricNodeStress])
	assert.Equal(t, 1.0, v[MetricAlertCount])
	for name := range v {
		assert.True(t, IsMetric(name), name)
	}

	assert.Empty(t, Values(Merge(Readings{})))
}
