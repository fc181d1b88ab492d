// Package chat answers free-text policy questions: the simulation service writes
// the analysis, an Interpreter extracts policy levers and a short projection
// shows what those levers would do.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/etwin/twinboard/internal/api"
	"github.com/etwin/twinboard/internal/models"
)

var ErrEmptyQuestion = errors.New("question is empty")

const (
	SourceSimulation = "simulation"
	SourceOffline    = "offline"
)

type Config struct {
	ProjectionSteps int
	CacheTTL        time.Duration
	CacheSize       int
}

type cachedReply struct {
	reply   *models.ChatReply
	expires time.Time
}

// Assistant answers policy questions. sim may be nil, in which case every answer
// is produced offline.
type Assistant struct {
	sim         api.SimulationService
	interpreter Interpreter
	fallback    Interpreter
	cache       *lru.Cache
	logger      *logrus.Logger
	config      Config
	now         func() time.Time
}

// NewAssistant wires an assistant. A nil interpreter means keyword matching only.
func NewAssistant(sim api.SimulationService, interpreter Interpreter, logger *logrus.Logger, config Config) (*Assistant, error) {
	if config.ProjectionSteps < 1 {
		config.ProjectionSteps = 5
	}
	if config.CacheSize < 1 {
		config.CacheSize = 256
	}
	cache, err := lru.New(config.CacheSize)
	if err != nil {
		return nil, err
	}
	fallback := KeywordInterpreter{}
	if interpreter == nil {
		interpreter = fallback
	}
	return &Assistant{
		sim:         sim,
		interpreter: interpreter,
		fallback:    fallback,
		cache:       cache,
		logger:      logger,
		config:      config,
		now:         time.Now,
	}, nil
}

func normalize(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}

// Ask answers question. Upstream failures degrade to an offline answer; only an
// empty question is an error.
func (a *Assistant) Ask(ctx context.Context, question string) (*models.ChatReply, error) {
	key := normalize(question)
	if key == "" {
		return nil, ErrEmptyQuestion
	}
	if v, ok := a.cache.Get(key); ok {
		entry := v.(cachedReply)
		if a.now().Before(entry.expires) {
			return copyReply(entry.reply), nil
		}
		a.cache.Remove(key)
	}

	reply := &models.ChatReply{
		Question: strings.TrimSpace(question),
		Source:   SourceSimulation,
	}

	analysis, err := a.analyze(ctx, reply.Question)
	if err != nil {
		a.logger.WithError(err).Warn("Policy chat unavailable, answering offline")
		reply.Offline = true
		reply.Source = SourceOffline
	}

	bundle := a.interpret(ctx, reply.Question)
	reply.Policy = bundle.Policy()

	if reply.Offline {
		reply.Analysis = offlineAnalysis(bundle)
	} else {
		reply.Analysis = analysis
		if !bundle.Empty() {
			reply.Deltas = a.project(ctx, bundle)
		}
		if a.config.CacheTTL > 0 {
			a.cache.Add(key, cachedReply{reply: copyReply(reply), expires: a.now().Add(a.config.CacheTTL)})
		}
	}

	a.logger.WithFields(logrus.Fields{
		"source": reply.Source,
		"policy": bundle.String(),
	}).Info("Policy question answered")
	return reply, nil
}

func (a *Assistant) analyze(ctx context.Context, question string) (string, error) {
	if a.sim == nil {
		return "", api.ErrUpstreamRequest
	}
	res, err := a.sim.PolicyChat(ctx, models.ChatRequest{Question: question})
	if err != nil {
		return "", err
	}
	return res.Analysis, nil
}

func (a *Assistant) interpret(ctx context.Context, question string) *PolicyBundle {
	bundle, err := a.interpreter.Interpret(ctx, question)
	if err == nil && bundle != nil {
		return bundle
	}
	if err != nil {
		a.logger.WithError(err).Warn("Policy interpreter failed, using keywords")
	}
	bundle, _ = a.fallback.Interpret(ctx, question)
	return bundle
}

// project runs the policy forward and reports last-minus-first for every metric.
func (a *Assistant) project(ctx context.Context, bundle *PolicyBundle) map[string]float64 {
	res, err := a.sim.Simulate(ctx, models.PolicyRequest{
		Steps:  a.config.ProjectionSteps,
		Policy: bundle.Policy(),
	})
	if err != nil {
		a.logger.WithError(err).Warn("Policy projection failed")
		return nil
	}
	return Deltas(res.Results)
}

// Deltas is the change of every aggregate between the first and last step.
func Deltas(steps []models.SimulationMetrics) map[string]float64 {
	if len(steps) == 0 {
		return nil
	}
	first, last := steps[0], steps[len(steps)-1]
	return map[string]float64{
		"total_water_consumption":       last.TotalWaterConsumption - first.TotalWaterConsumption,
		"total_energy_consumption":      last.TotalEnergyConsumption - first.TotalEnergyConsumption,
		"average_income":                last.AverageIncome - first.AverageIncome,
		"total_emissions":               last.TotalEmissions - first.TotalEmissions,
		"average_infrastructure_stress": last.AverageInfrastructureStress - first.AverageInfrastructureStress,
		"average_social_vulnerability":  last.AverageSocialVulnerability - first.AverageSocialVulnerability,
		"composite_sdg_score":           last.CompositeSDGScore - first.CompositeSDGScore,
	}
}

func offlineAnalysis(bundle *PolicyBundle) string {
	if bundle.Empty() {
		return "The simulation service is unreachable and no policy levers were recognised in the question."
	}
	return fmt.Sprintf("The simulation service is unreachable, so no projection was run. Interpreted policy: %s.", bundle)
}

func copyReply(r *models.ChatReply) *models.ChatReply {
	c := *r
	if r.Policy != nil {
		c.Policy = make(map[string]float64, len(r.Policy))
		for k, v := range r.Policy {
			c.Policy[k] = v
		}
	}
	if r.Deltas != nil {
		c.Deltas = make(map[string]float64, len(r.Deltas))
		for k, v := range r.Deltas {
			c.Deltas[k] = v
		}
	}
	return &c
}
