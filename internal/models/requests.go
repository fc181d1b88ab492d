package models

// SignalUpdate is the digital-twin signal injection payload.
type SignalUpdate struct {
	Temp       float64 `json:"temp"`
	Precip     float64 `json:"precip"`
	WindSpeed  float64 `json:"wind_speed"`
	Solar      float64 `json:"solar"`
	AQI        float64 `json:"aqi"`
	CO2Delta   float64 `json:"co2_delta"`
	EconStress float64 `json:"econ_stress"`
	IsAnomaly  bool    `json:"is_anomaly"`
}

// NewSignalUpdate returns a SignalUpdate carrying the upstream defaults.
func NewSignalUpdate(temp, precip float64) SignalUpdate {
	return SignalUpdate{
		Temp:       temp,
		Precip:     precip,
		AQI:        42.0,
		CO2Delta:   0.01,
		EconStress: 1.0,
	}
}

// UpdateAck is returned by /update-digital-twin.
type UpdateAck struct {
	Status string `json:"status"`
	Cycle  int    `json:"cycle"`
}

// PolicyRequest asks the simulation API to project a number of steps.
type PolicyRequest struct {
	Steps  int                `json:"steps"`
	Policy map[string]float64 `json:"policy,omitempty"`
}

// SimulationResult is returned by /api/simulate.
type SimulationResult struct {
	Status  string              `json:"status"`
	Results []SimulationMetrics `json:"results"`
}

// EmergencyResult is returned by /run-emergency-simulation.
type EmergencyResult struct {
	Status string `json:"status"`
	Policy string `json:"policy"`
}

// ChatRequest is a free-text policy question.
type ChatRequest struct {
	Question     string `json:"question"`
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
}

// ChatAnalysis is the upstream answer to a policy question.
type ChatAnalysis struct {
	Analysis string `json:"analysis"`
}

// ChatReply is what the assistant hands back to the chat widget.
type ChatReply struct {
	Question string             `json:"question"`
	Analysis string             `json:"analysis"`
	Policy   map[string]float64 `json:"policy,omitempty"`
	Deltas   map[string]float64 `json:"deltas,omitempty"`
	Source   string             `json:"source"`
	Offline  bool               `json:"offline"`
}
