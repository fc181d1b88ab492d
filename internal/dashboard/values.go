package dashboard

import "github.com/etwin/twinboard/internal/models"

// Metric names recorded for trend charts.
const (
	MetricSDGComposite    = "sdg_composite"
	MetricStability       = "system_stability"
	MetricTemperature     = "temperature"
	MetricPrecipitation   = "precipitation"
	MetricReservoir       = "reservoir_level"
	MetricCO2             = "co2_ppm"
	MetricAQI             = "aqi"
	MetricGDPGrowth       = "gdp_growth"
	MetricInequality      = "inequality"
	MetricPublicPressure  = "public_pressure"
	MetricRiskProbability = "risk_probability"
	MetricNodeStress      = "node_stress_mean"
	MetricAlertCount      = "alert_count"
)

// MetricNames lists every metric Values can produce.
var MetricNames = []string{
	MetricSDGComposite, MetricStability, MetricTemperature, MetricPrecipitation,
	MetricReservoir, MetricCO2, MetricAQI, MetricGDPGrowth, MetricInequality,
	MetricPublicPressure, MetricRiskProbability, MetricNodeStress, MetricAlertCount,
}

// IsMetric reports whether name is a recorded metric.
func IsMetric(name string) bool {
	for _, m := range MetricNames {
		if m == name {
			return true
		}
	}
	return false
}

// Values flattens the headline numbers of d. Offline sections contribute nothing.
func Values(d *models.Dashboard) map[string]float64 {
	v := make(map[string]float64, len(MetricNames))
	if d == nil {
		return v
	}
	if d.State != nil {
		v[MetricSDGComposite] = d.State.SDGCompositeScore
		v[MetricStability] = d.State.SystemStabilityScore
	}
	if d.Climate != nil {
		v[MetricTemperature] = d.Climate.TemperatureCurrent
		v[MetricPrecipitation] = d.Climate.PrecipitationCurrent
	}
	if d.Water != nil {
		v[MetricReservoir] = d.Water.ReservoirLevelPercent
	}
	if d.Environment != nil {
		v[MetricCO2] = d.Environment.CO2PPM
		v[MetricAQI] = d.Environment.AQI
	}
	if d.Economy != nil {
		v[MetricGDPGrowth] = d.Economy.GDPGrowthRate
	}
	if d.Social != nil {
		v[MetricInequality] = d.Social.InequalityIndex
		v[MetricPublicPressure] = d.Social.PublicPressureScore
	}
	if d.Forecast != nil {
		v[MetricRiskProbability] = d.Forecast.RiskProbability
	}
	if d.Nodes != nil && len(d.Nodes.Nodes) > 0 {
		sum := 0.0
		for _, n := range d.Nodes.Nodes {
			sum += n.Stress
		}
		v[MetricNodeStress] = round(sum/float64(len(d.Nodes.Nodes)), 4)
	}
	if d.Online() {
		v[MetricAlertCount] = float64(len(d.Alerts))
	}
	return v
}
