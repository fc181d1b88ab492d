// Package dashboard polls the simulation and governance services and merges
// their answers into the dashboard snapshot the widgets read.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/etwin/twinboard/internal/api"
	"github.com/etwin/twinboard/internal/metrics"
	"github.com/etwin/twinboard/internal/models"
)

var (
	ErrSimulationUnavailable = errors.New("simulation service not configured")
	ErrGovernanceUnavailable = errors.New("governance service not configured")
)

// Observer receives every freshly merged dashboard.
type Observer interface {
	Observe(ctx context.Context, d *models.Dashboard) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, d *models.Dashboard) error

func (f ObserverFunc) Observe(ctx context.Context, d *models.Dashboard) error {
	return f(ctx, d)
}

// PollerConfig tunes a Poller.
type PollerConfig struct {
	TimelineLimit  int
	OverrideWindow time.Duration
	PollTimeout    time.Duration
}

// Poller fetches both services, merges them and publishes the result.
// Either service may be nil when it is not configured.
type Poller struct {
	sim       api.SimulationService
	gov       api.GovernanceService
	store     *Store
	logger    *logrus.Logger
	metrics   *metrics.Metrics
	config    PollerConfig
	observers []Observer
	now       func() time.Time

	mu sync.Mutex // one poll at a time
}

func NewPoller(
	sim api.SimulationService,
	gov api.GovernanceService,
	store *Store,
	logger *logrus.Logger,
	m *metrics.Metrics,
	config PollerConfig,
) *Poller {
	if config.PollTimeout <= 0 {
		config.PollTimeout = time.Minute
	}
	return &Poller{
		sim:     sim,
		gov:     gov,
		store:   store,
		logger:  logger,
		metrics: m,
		config:  config,
		now:     time.Now,
	}
}

// AddObserver registers o for every future published dashboard.
func (p *Poller) AddObserver(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// Store returns the snapshot store the poller publishes to.
func (p *Poller) Store() *Store {
	return p.store
}

// Latest returns a copy of the last published dashboard, or nil before the first poll.
func (p *Poller) Latest() *models.Dashboard {
	return p.store.Latest()
}

// Poll fetches every endpoint of both services sequentially and merges the result.
// Failures never surface as errors: they become offline sections.
func (p *Poller) Poll(ctx context.Context) *models.Dashboard {
	start := time.Now()
	r := Readings{
		PolledAt:      p.now(),
		TimelineLimit: p.config.TimelineLimit,
	}
	p.pollSimulation(ctx, &r)
	p.pollGovernance(ctx, &r)

	if p.metrics != nil {
		p.metrics.PollDuration.Observe(time.Since(start).Seconds())
	}
	return Merge(r)
}

// Tick is the scheduled entry point: it skips while a manual override is showing.
func (p *Poller) Tick(ctx context.Context) error {
	_, _, err := p.Refresh(ctx, false)
	return err
}

// Refresh polls and publishes. Without force it leaves a suppressed dashboard alone
// and reports refreshed=false.
func (p *Poller) Refresh(ctx context.Context, force bool) (d *models.Dashboard, refreshed bool, err error) {
	if !force && p.store.Suppressed(p.now()) {
		p.logger.WithFields(logrus.Fields{
			"until": p.store.SuppressedUntil().Format(time.RFC3339),
		}).Debug("Manual override active, skipping scheduled poll")
		return p.store.Latest(), false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// a manual action may have landed while this poll waited for the lock
	if !force && p.store.Suppressed(p.now()) {
		return p.store.Latest(), false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.PollTimeout)
	defer cancel()

	d = p.Poll(ctx)
	if force {
		p.store.ClearOverride()
	}
	p.store.Update(d)
	p.publish(ctx, d)

	if !d.Online() {
		p.logger.Warn("Both upstream services are offline")
	}
	return d.Clone(), true, nil
}

// Project runs a manual what-if projection and shows it for the override window.
func (p *Poller) Project(ctx context.Context, req models.PolicyRequest) (*models.Dashboard, error) {
	if p.sim == nil {
		return nil, ErrSimulationUnavailable
	}
	res, err := p.sim.Simulate(ctx, req)
	p.metrics.ObserveUpstream("simulation", "simulate", err)
	if err != nil {
		return nil, fmt.Errorf("projection failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	until := now.Add(p.config.OverrideWindow)
	d := p.store.Latest()
	if d == nil {
		pollCtx, cancel := context.WithTimeout(ctx, p.config.PollTimeout)
		d = p.Poll(pollCtx)
		cancel()
	}
	d.Projection = &models.Projection{
		Policy:    req.Policy,
		Steps:     res.Results,
		Requested: now,
		Until:     until,
	}
	p.store.Override(d, until)

	p.logger.WithFields(logrus.Fields{
		"steps":  req.Steps,
		"policy": req.Policy,
		"until":  until.Format(time.RFC3339),
	}).Info("Manual projection installed")
	return d.Clone(), nil
}

// Emergency triggers the governance emergency simulation and shows the outcome.
func (p *Poller) Emergency(ctx context.Context) (*models.EmergencyResult, *models.Dashboard, error) {
	if p.gov == nil {
		return nil, nil, ErrGovernanceUnavailable
	}
	res, err := p.gov.RunEmergencySimulation(ctx)
	p.metrics.ObserveUpstream("governance", "run-emergency-simulation", err)
	if err != nil {
		return nil, nil, fmt.Errorf("emergency simulation failed: %w", err)
	}
	d, err := p.overrideWithFreshPoll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return res, d, nil
}

// InjectSignal forwards a signal update to both services. The simulation service is
// authoritative; the governance copy is best effort.
func (p *Poller) InjectSignal(ctx context.Context, update models.SignalUpdate) (map[string]*models.UpdateAck, *models.Dashboard, error) {
	acks := make(map[string]*models.UpdateAck, 2)
	var errs []error

	if p.sim != nil {
		ack, err := p.sim.UpdateDigitalTwin(ctx, update)
		p.metrics.ObserveUpstream("simulation", "update-digital-twin", err)
		if err != nil {
			errs = append(errs, fmt.Errorf("simulation: %w", err))
		} else {
			acks["simulation"] = ack
		}
	}
	if p.gov != nil {
		ack, err := p.gov.UpdateDigitalTwin(ctx, update)
		p.metrics.ObserveUpstream("governance", "update-digital-twin", err)
		if err != nil {
			p.logger.WithError(err).Warn("Governance signal update failed")
			errs = append(errs, fmt.Errorf("governance: %w", err))
		} else {
			acks["governance"] = ack
		}
	}
	if len(acks) == 0 {
		if len(errs) == 0 {
			return nil, nil, ErrSimulationUnavailable
		}
		return nil, nil, fmt.Errorf("signal update failed: %w", errors.Join(errs...))
	}

	d, err := p.overrideWithFreshPoll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return acks, d, nil
}

func (p *Poller) overrideWithFreshPoll(ctx context.Context) (*models.Dashboard, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, p.config.PollTimeout)
	defer cancel()

	d := p.Poll(ctx)
	p.store.Override(d, p.now().Add(p.config.OverrideWindow))
	p.publish(ctx, d)
	return d.Clone(), nil
}

func (p *Poller) publish(ctx context.Context, d *models.Dashboard) {
	p.metrics.ObserveDashboard(d, Values(d))
	for _, o := range p.observers {
		if err := o.Observe(ctx, d.Clone()); err != nil {
			p.logger.WithError(err).Error("Dashboard observer failed")
		}
	}
}

func (p *Poller) pollSimulation(ctx context.Context, r *Readings) {
	if p.sim == nil {
		return
	}
	c := newCallRecorder(p, "simulation")

	health, err := p.sim.Health(ctx)
	if !c.ok("health", err) && errors.Is(err, api.ErrUpstreamRequest) {
		// unreachable: don't spend a timeout on every other endpoint
		return
	}
	r.SimHealth = health

	if v, err := p.sim.State(ctx); c.ok("state", err) {
		r.SimState = v
	}
	if v, err := p.sim.Climate(ctx); c.ok("climate", err) {
		r.SimClimate = v
	}
	if v, err := p.sim.Water(ctx); c.ok("water", err) {
		r.SimWater = v
	}
	if v, err := p.sim.Alerts(ctx); c.ok("alerts", err) {
		r.SimAlerts = nonNil(v)
	}
	if v, err := p.sim.History(ctx); c.ok("history", err) {
		r.History = nonNil(v)
	}
	if v, err := p.sim.Nodes(ctx); c.ok("nodes", err) {
		r.Nodes = v
	}
	r.SimulationOnline = c.online
}

func (p *Poller) pollGovernance(ctx context.Context, r *Readings) {
	if p.gov == nil {
		return
	}
	c := newCallRecorder(p, "governance")

	health, err := p.gov.Health(ctx)
	if !c.ok("health", err) && errors.Is(err, api.ErrUpstreamRequest) {
		return
	}
	r.GovHealth = health

	if v, err := p.gov.State(ctx); c.ok("state", err) {
		r.GovState = v
	}
	if v, err := p.gov.Climate(ctx); c.ok("climate", err) {
		r.GovClimate = v
	}
	if v, err := p.gov.Water(ctx); c.ok("water", err) {
		r.GovWater = v
	}
	if v, err := p.gov.Environment(ctx); c.ok("environment", err) {
		r.Environment = v
	}
	if v, err := p.gov.Economy(ctx); c.ok("economy", err) {
		r.Economy = v
	}
	if v, err := p.gov.Social(ctx); c.ok("social", err) {
		r.Social = v
	}
	if v, err := p.gov.Alerts(ctx); c.ok("alerts", err) {
		r.GovAlerts = nonNil(v)
	}
	if v, err := p.gov.Insights(ctx); c.ok("insights", err) {
		r.Insights = v
	}
	if v, err := p.gov.Timeline(ctx, p.config.TimelineLimit); c.ok("timeline", err) {
		r.Timeline = nonNil(v)
	}
	if v, err := p.gov.Forecast(ctx); c.ok("forecast", err) {
		r.Forecast = v
	}
	r.GovernanceOnline = c.online
}

// callRecorder counts outcomes and remembers whether any call of a service succeeded.
type callRecorder struct {
	p       *Poller
	service string
	online  bool
}

func newCallRecorder(p *Poller, service string) *callRecorder {
	return &callRecorder{p: p, service: service}
}

func (c *callRecorder) ok(endpoint string, err error) bool {
	c.p.metrics.ObserveUpstream(c.service, endpoint, err)
	if err != nil {
		c.p.logger.WithFields(logrus.Fields{
			"service":  c.service,
			"endpoint": endpoint,
			"error":    err,
		}).Debug("Upstream call failed")
		return false
	}
	c.online = true
	return true
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
