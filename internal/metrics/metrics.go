// Package metrics declares the Prometheus collectors shared by the servers and the poller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/etwin/twinboard/internal/models"
)

// Metrics groups every collector the service exports.
type Metrics struct {
	Requests         *prometheus.CounterVec
	Latency          *prometheus.HistogramVec
	UpstreamRequests *prometheus.CounterVec
	UpstreamUp       *prometheus.GaugeVec
	PollDuration     prometheus.Histogram
	DashboardValue   *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twinboard",
			Name:      "requests_total",
			Help:      "Requests served, by transport, method and status.",
		}, []string{"transport", "method", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "twinboard",
			Name:      "request_duration_seconds",
			Help:      "Request latency, by transport and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"transport", "method"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "twinboard",
			Name:      "upstream_requests_total",
			Help:      "Upstream calls made by the poller, by service, endpoint and outcome.",
		}, []string{"service", "endpoint", "outcome"}),
		UpstreamUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "twinboard",
			Name:      "upstream_up",
			Help:      "1 when the upstream service answered during the last poll.",
		}, []string{"service"}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "twinboard",
			Name:      "poll_duration_seconds",
			Help:      "Duration of a full poll of both upstream services.",
			Buckets:   prometheus.DefBuckets,
		}),
		DashboardValue: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "twinboard",
			Name:      "dashboard_value",
			Help:      "Latest merged dashboard metric values.",
		}, []string{"metric"}),
	}

	for _, c := range []prometheus.Collector{
		m.Requests, m.Latency, m.UpstreamRequests, m.UpstreamUp, m.PollDuration, m.DashboardValue,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveUpstream counts one upstream call.
func (m *Metrics) ObserveUpstream(service, endpoint string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(service, endpoint, outcome).Inc()
}

// ObserveDashboard publishes upstream badges and the headline values of d.
func (m *Metrics) ObserveDashboard(d *models.Dashboard, values map[string]float64) {
	if m == nil {
		return
	}
	m.UpstreamUp.WithLabelValues("simulation").Set(boolGauge(d.Simulation.Online))
	m.UpstreamUp.WithLabelValues("governance").Set(boolGauge(d.Governance.Online))
	for name, v := range values {
		m.DashboardValue.WithLabelValues(name).Set(v)
	}
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
