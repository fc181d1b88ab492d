package models

import "time"

// Source tells where a dashboard section came from.
type Source string

const (
	SourceGovernance Source = "governance"
	SourceSimulation Source = "simulation"
	SourceDerived    Source = "derived"
	SourceOffline    Source = "offline"
	SourceManual     Source = "manual"
)

// Dashboard section names.
const (
	SectionState       = "state"
	SectionClimate     = "climate"
	SectionWater       = "water"
	SectionEnvironment = "environment"
	SectionEconomy     = "economy"
	SectionSocial      = "social"
	SectionAlerts      = "alerts"
	SectionInsights    = "insights"
	SectionTimeline    = "timeline"
	SectionForecast    = "forecast"
	SectionNodes       = "nodes"
	SectionHistory     = "history"
)

// Sections lists every section in display order.
var Sections = []string{
	SectionState, SectionClimate, SectionWater, SectionEnvironment, SectionEconomy,
	SectionSocial, SectionAlerts, SectionInsights, SectionTimeline, SectionForecast,
	SectionNodes, SectionHistory,
}

// ServiceStatus is the online badge of an upstream service.
type ServiceStatus struct {
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"last_seen,omitempty"`
	Health   *Health   `json:"health,omitempty"`
}

// Projection is a manually requested what-if run shown over the live data.
type Projection struct {
	Policy    map[string]float64  `json:"policy,omitempty"`
	Steps     []SimulationMetrics `json:"steps"`
	Requested time.Time           `json:"requested"`
	Until     time.Time           `json:"until"`
}

// Dashboard is the merged view of both upstream services.
type Dashboard struct {
	PolledAt    time.Time           `json:"polled_at"`
	Simulation  ServiceStatus       `json:"simulation"`
	Governance  ServiceStatus       `json:"governance"`
	Sources     map[string]Source   `json:"sources"`
	State       *StateSnapshot      `json:"state,omitempty"`
	Climate     *ClimateReading     `json:"climate,omitempty"`
	Water       *WaterReading       `json:"water,omitempty"`
	Environment *EnvironmentReading `json:"environment,omitempty"`
	Economy     *EconomyReading     `json:"economy,omitempty"`
	Social      *SocialReading      `json:"social,omitempty"`
	Alerts      []Alert             `json:"alerts"`
	Insights    *PolicyInsight      `json:"insights,omitempty"`
	Timeline    []TimelineEvent     `json:"timeline"`
	Forecast    *Forecast           `json:"forecast,omitempty"`
	Nodes       *NodeList           `json:"nodes,omitempty"`
	History     []SimulationMetrics `json:"history,omitempty"`
	Projection  *Projection         `json:"projection,omitempty"`
}

// Online reports whether at least one upstream answered.
func (d *Dashboard) Online() bool {
	return d.Simulation.Online || d.Governance.Online
}

// Section returns the value of a named section and whether the name is known.
func (d *Dashboard) Section(name string) (interface{}, bool) {
	switch name {
	case SectionState:
		return d.State, true
	case SectionClimate:
		return d.Climate, true
	case SectionWater:
		return d.Water, true
	case SectionEnvironment:
		return d.Environment, true
	case SectionEconomy:
		return d.Economy, true
	case SectionSocial:
		return d.Social, true
	case SectionAlerts:
		return d.Alerts, true
	case SectionInsights:
		return d.Insights, true
	case SectionTimeline:
		return d.Timeline, true
	case SectionForecast:
		return d.Forecast, true
	case SectionNodes:
		return d.Nodes, true
	case SectionHistory:
		return d.History, true
	}
	return nil, false
}

// Clone returns a deep copy of d; mutating the copy never reaches d.
func (d *Dashboard) Clone() *Dashboard {
	if d == nil {
		return nil
	}
	c := *d
	c.Simulation.Health = d.Simulation.Health.clone()
	c.Governance.Health = d.Governance.Health.clone()
	c.Sources = make(map[string]Source, len(d.Sources))
	for k, v := range d.Sources {
		c.Sources[k] = v
	}

	c.State = clonePtr(d.State)
	c.Climate = clonePtr(d.Climate)
	c.Water = clonePtr(d.Water)
	c.Environment = clonePtr(d.Environment)
	c.Economy = clonePtr(d.Economy)
	c.Social = clonePtr(d.Social)
	c.Insights = clonePtr(d.Insights)

	c.Alerts = make([]Alert, len(d.Alerts))
	copy(c.Alerts, d.Alerts)
	c.Timeline = make([]TimelineEvent, len(d.Timeline))
	copy(c.Timeline, d.Timeline)
	if d.History != nil {
		c.History = append([]SimulationMetrics(nil), d.History...)
	}
	if d.Nodes != nil {
		nodes := *d.Nodes
		nodes.Nodes = append([]NodeReading(nil), d.Nodes.Nodes...)
		c.Nodes = &nodes
	}
	if d.Forecast != nil {
		f := *d.Forecast
		f.ReservoirProjection = append([]float64(nil), d.Forecast.ReservoirProjection...)
		f.EmissionProjection = append([]float64(nil), d.Forecast.EmissionProjection...)
		c.Forecast = &f
	}
	if d.Projection != nil {
		p := *d.Projection
		p.Steps = append([]SimulationMetrics(nil), d.Projection.Steps...)
		if d.Projection.Policy != nil {
			p.Policy = make(map[string]float64, len(d.Projection.Policy))
			for k, v := range d.Projection.Policy {
				p.Policy[k] = v
			}
		}
		c.Projection = &p
	}
	return &c
}

func (h *Health) clone() *Health {
	if h == nil {
		return nil
	}
	c := *h
	c.LastPolicyRun = clonePtr(h.LastPolicyRun)
	return &c
}

// clonePtr copies a pointer to a flat value.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
