package models

import "time"

// StateSnapshot is the top-level reading served by /api/state/current.
type StateSnapshot struct {
	Timestamp            string  `json:"timestamp"`
	Location             string  `json:"location,omitempty"`
	SDGCompositeScore    float64 `json:"sdg_composite_score"`
	SystemStabilityScore float64 `json:"system_stability_score"`
	ConfidenceScore      float64 `json:"confidence_score,omitempty"`
	CycleID              int     `json:"cycle_id"`
}

// ClimateReading mirrors /api/signals/climate.
type ClimateReading struct {
	TemperatureCurrent   float64 `json:"temperature_current"`
	Temperature7CycleAvg float64 `json:"temperature_7_cycle_avg"`
	TemperatureAnomaly   float64 `json:"temperature_anomaly"`
	PrecipitationCurrent float64 `json:"precipitation_current"`
	ClimateStressFactor  float64 `json:"climate_stress_factor"`
	AnomalyDetected      bool    `json:"anomaly_detected"`
	Trend                string  `json:"trend"`
}

// WaterReading mirrors /api/systems/water.
type WaterReading struct {
	ReservoirLevelPercent float64 `json:"reservoir_level_percent"`
	DailyInflow           float64 `json:"daily_inflow"`
	DailyOutflow          float64 `json:"daily_outflow"`
	WaterStressIndex      float64 `json:"water_stress_index"`
	DaysUntilCritical     int     `json:"days_until_critical"`
	Status                string  `json:"status"`
}

// EnvironmentReading mirrors /api/systems/environment.
type EnvironmentReading struct {
	CO2PPM             float64 `json:"co2_ppm"`
	EmissionGrowthRate float64 `json:"emission_growth_rate"`
	AQI                float64 `json:"aqi"`
	Trend              string  `json:"trend"`
}

// EconomyReading mirrors /api/systems/economy.
type EconomyReading struct {
	GDPGrowthRate          float64 `json:"gdp_growth_rate"`
	IndustryProfitIndex    float64 `json:"industry_profit_index"`
	EnergyPriceIndex       float64 `json:"energy_price_index"`
	PolicySpending         float64 `json:"policy_spending"`
	EconomicStabilityScore float64 `json:"economic_stability_score"`
}

// SocialReading mirrors /api/systems/social.
type SocialReading struct {
	InequalityIndex      float64 `json:"inequality_index"`
	PublicSentimentScore float64 `json:"public_sentiment_score"`
	PublicPressureScore  float64 `json:"public_pressure_score"`
	GovernanceConfidence float64 `json:"governance_confidence"`
	StabilityTrend       string  `json:"stability_trend"`
}

// Alert is a single entry of /api/alerts/recent.
type Alert struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// PolicyInsight mirrors /api/insights/latest.
type PolicyInsight struct {
	RecommendedPolicy string  `json:"recommended_policy"`
	ExpectedSDGDelta  float64 `json:"expected_sdg_delta"`
	Confidence        float64 `json:"confidence"`
	RiskLevel         string  `json:"risk_level"`
	Explanation       string  `json:"explanation"`
}

// TimelineEvent is a single entry of /api/timeline.
type TimelineEvent struct {
	CycleID            int     `json:"cycle_id"`
	RealSignal         string  `json:"real_signal"`
	AnomalyScore       float64 `json:"anomaly_score"`
	PolicyApplied      string  `json:"policy_applied"`
	SDGChange          float64 `json:"sdg_change"`
	ResultingStability float64 `json:"resulting_stability"`
	Timestamp          string  `json:"timestamp"`
}

// Forecast mirrors /api/forecast/7-cycle.
type Forecast struct {
	ReservoirProjection []float64 `json:"reservoir_projection"`
	EmissionProjection  []float64 `json:"emission_projection"`
	RiskProbability     float64   `json:"risk_probability"`
}

// NodeReading is one graph node as served by /api/nodes.
type NodeReading struct {
	ID            int     `json:"id"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Stress        float64 `json:"stress"`
	Emissions     float64 `json:"emissions"`
	Vulnerability float64 `json:"vulnerability"`
}

// NodeList is the /api/nodes envelope.
type NodeList struct {
	Nodes    []NodeReading `json:"nodes"`
	Timestep int           `json:"timestep"`
}

// SimulationMetrics is one aggregated step of the simulation engine.
type SimulationMetrics struct {
	Timestep                    int     `json:"timestep"`
	TotalWaterConsumption       float64 `json:"total_water_consumption"`
	TotalEnergyConsumption      float64 `json:"total_energy_consumption"`
	AverageIncome               float64 `json:"average_income"`
	TotalEmissions              float64 `json:"total_emissions"`
	AverageInfrastructureStress float64 `json:"average_infrastructure_stress"`
	AverageSocialVulnerability  float64 `json:"average_social_vulnerability"`
	CompositeSDGScore           float64 `json:"composite_sdg_score"`
}

// Health merges the health shapes of both upstream services.
type Health struct {
	Status                 string  `json:"status,omitempty"`
	GNNEngine              string  `json:"gnn_engine,omitempty"`
	LastInjection          string  `json:"last_injection,omitempty"`
	SimulationEngineStatus string  `json:"simulation_engine_status,omitempty"`
	LastSignalInjection    string  `json:"last_signal_injection,omitempty"`
	LastPolicyRun          *string `json:"last_policy_run,omitempty"`
}

// TimeSeriesData represents a single aggregated time series data point
type TimeSeriesData struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// MetricSample is one recorded dashboard metric value.
type MetricSample struct {
	Metric string    `json:"metric"`
	Time   time.Time `json:"time"`
	Value  float64   `json:"value"`
}
