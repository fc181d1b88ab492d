package dashboard

import (
	"sort"
	"time"

	"github.com/etwin/twinboard/internal/models"
)

const maxAlerts = 20

// Readings is the raw outcome of one poll. A nil field means the endpoint did not
// answer; an empty slice means it answered with nothing.
type Readings struct {
	PolledAt time.Time

	SimulationOnline bool
	SimHealth        *models.Health
	SimState         *models.StateSnapshot
	SimClimate       *models.ClimateReading
	SimWater         *models.WaterReading
	SimAlerts        []models.Alert
	History          []models.SimulationMetrics
	Nodes            *models.NodeList

	GovernanceOnline bool
	GovHealth        *models.Health
	GovState         *models.StateSnapshot
	GovClimate       *models.ClimateReading
	GovWater         *models.WaterReading
	Environment      *models.EnvironmentReading
	Economy          *models.EconomyReading
	Social           *models.SocialReading
	GovAlerts        []models.Alert
	Insights         *models.PolicyInsight
	Timeline         []models.TimelineEvent
	Forecast         *models.Forecast

	TimelineLimit int
}

// Merge reconciles both services into one dashboard. Governance values win;
// simulation values and formula derivations fill the gaps; anything left is offline.
func Merge(r Readings) *models.Dashboard {
	d := &models.Dashboard{
		PolledAt: r.PolledAt,
		Simulation: models.ServiceStatus{
			Online: r.SimulationOnline,
			Health: r.SimHealth,
		},
		Governance: models.ServiceStatus{
			Online: r.GovernanceOnline,
			Health: r.GovHealth,
		},
		Sources:  make(map[string]models.Source, len(models.Sections)),
		Alerts:   []models.Alert{},
		Timeline: []models.TimelineEvent{},
	}
	if r.SimulationOnline {
		d.Simulation.LastSeen = r.PolledAt
	}
	if r.GovernanceOnline {
		d.Governance.LastSeen = r.PolledAt
	}
	for _, s := range models.Sections {
		d.Sources[s] = models.SourceOffline
	}

	switch {
	case r.GovState != nil:
		d.State = r.GovState
		d.Sources[models.SectionState] = models.SourceGovernance
	case r.SimState != nil:
		d.State = deriveState(r.SimState)
		d.Sources[models.SectionState] = models.SourceSimulation
	}

	switch {
	case r.GovClimate != nil:
		d.Climate = r.GovClimate
		d.Sources[models.SectionClimate] = models.SourceGovernance
	case r.SimClimate != nil:
		d.Climate = deriveClimate(r.SimClimate)
		d.Sources[models.SectionClimate] = models.SourceSimulation
	}

	switch {
	case r.GovWater != nil:
		d.Water = r.GovWater
		d.Sources[models.SectionWater] = models.SourceGovernance
	case r.SimWater != nil:
		d.Water = deriveWater(r.SimWater)
		d.Sources[models.SectionWater] = models.SourceSimulation
	}

	if r.Nodes != nil {
		d.Nodes = r.Nodes
		d.Sources[models.SectionNodes] = models.SourceSimulation
	}
	if r.History != nil {
		d.History = r.History
		d.Sources[models.SectionHistory] = models.SourceSimulation
	}

	switch {
	case r.GovAlerts != nil:
		d.Alerts = mergeAlerts(r.GovAlerts, r.SimAlerts)
		d.Sources[models.SectionAlerts] = models.SourceGovernance
	case r.SimAlerts != nil:
		d.Alerts = mergeAlerts(nil, r.SimAlerts)
		d.Sources[models.SectionAlerts] = models.SourceSimulation
	}

	// Everything below derives from the state snapshot when governance is silent.
	basis := d.State != nil

	switch {
	case r.Environment != nil:
		d.Environment = r.Environment
		d.Sources[models.SectionEnvironment] = models.SourceGovernance
	case basis:
		d.Environment = deriveEnvironment(d.State, r.History)
		d.Sources[models.SectionEnvironment] = models.SourceDerived
	}

	switch {
	case r.Economy != nil:
		d.Economy = r.Economy
		d.Sources[models.SectionEconomy] = models.SourceGovernance
	case basis:
		d.Economy = deriveEconomy(d.State)
		d.Sources[models.SectionEconomy] = models.SourceDerived
	}

	switch {
	case r.Social != nil:
		d.Social = r.Social
		d.Sources[models.SectionSocial] = models.SourceGovernance
	case basis:
		d.Social = deriveSocial(d.State, d.Water, r.History)
		d.Sources[models.SectionSocial] = models.SourceDerived
	}

	switch {
	case r.Insights != nil:
		d.Insights = r.Insights
		d.Sources[models.SectionInsights] = models.SourceGovernance
	case basis:
		d.Insights = deriveInsight(d.Climate, r.History)
		d.Sources[models.SectionInsights] = models.SourceDerived
	}

	switch {
	case r.Forecast != nil:
		d.Forecast = r.Forecast
		d.Sources[models.SectionForecast] = models.SourceGovernance
	case d.Water != nil && d.Environment != nil:
		d.Forecast = deriveForecast(d.Water, d.Environment, d.Climate)
		d.Sources[models.SectionForecast] = models.SourceDerived
	}

	switch {
	case r.Timeline != nil:
		d.Timeline = r.Timeline
		d.Sources[models.SectionTimeline] = models.SourceGovernance
	case basis:
		policy := BasePolicy
		if d.Insights != nil {
			policy = d.Insights.RecommendedPolicy
		}
		d.Timeline = deriveTimeline(d.Alerts, d.State, policy, r.TimelineLimit)
		d.Sources[models.SectionTimeline] = models.SourceDerived
	}

	return d
}

// mergeAlerts unions both alert lists by id, newest first, capped at maxAlerts.
func mergeAlerts(primary, secondary []models.Alert) []models.Alert {
	seen := make(map[int]bool, len(primary)+len(secondary))
	merged := make([]models.Alert, 0, len(primary)+len(secondary))
	for _, list := range [][]models.Alert{primary, secondary} {
		for _, a := range list {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			merged = append(merged, a)
		}
	}
	// upstream timestamps are ISO-8601 in UTC, so string order is time order
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp > merged[j].Timestamp
	})
	if len(merged) > maxAlerts {
		merged = merged[:maxAlerts]
	}
	return merged
}
