// Package history records the dashboard's headline metrics after every poll and
// prunes them past the retention period.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/etwin/twinboard/internal/dashboard"
	"github.com/etwin/twinboard/internal/database"
	"github.com/etwin/twinboard/internal/models"
)

type Recorder struct {
	repo      database.MetricRepository
	logger    *logrus.Logger
	retention time.Duration
	now       func() time.Time
}

func NewRecorder(repo database.MetricRepository, logger *logrus.Logger, retention time.Duration) *Recorder {
	return &Recorder{
		repo:      repo,
		logger:    logger,
		retention: retention,
		now:       time.Now,
	}
}

// Observe stores one sample per available metric, stamped with the poll time.
// Dashboards with both services offline are skipped.
func (r *Recorder) Observe(ctx context.Context, d *models.Dashboard) error {
	if !d.Online() {
		return nil
	}
	values := dashboard.Values(d)
	if len(values) == 0 {
		return nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	samples := make([]models.MetricSample, 0, len(names))
	for _, name := range names {
		samples = append(samples, models.MetricSample{
			Metric: name,
			Time:   d.PolledAt,
			Value:  values[name],
		})
	}
	if err := r.repo.BatchInsertSamples(ctx, samples); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	r.logger.WithField("samples", len(samples)).Debug("Dashboard metrics recorded")
	return nil
}

// Prune removes samples older than the retention period. A zero retention keeps everything.
func (r *Recorder) Prune(ctx context.Context) error {
	if r.retention <= 0 {
		return nil
	}
	before := r.now().Add(-r.retention)
	removed, err := r.repo.Prune(ctx, before)
	if err != nil {
		return err
	}
	r.logger.WithFields(logrus.Fields{
		"removed": removed,
		"before":  before.Format(time.RFC3339),
	}).Info("History pruned")
	return nil
}

var _ dashboard.Observer = (*Recorder)(nil)
