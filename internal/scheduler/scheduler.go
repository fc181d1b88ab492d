// Package scheduler runs the periodic background jobs (dashboard polls, history
// pruning) on a cron clock.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one unit of scheduled work. The context expires after the job's timeout
// or when the scheduler's parent context is cancelled.
type Job func(ctx context.Context) error

type Scheduler struct {
	ctx    context.Context
	logger *logrus.Logger
	cron   *cron.Cron
}

// NewScheduler builds a scheduler whose jobs never overlap with themselves.
func NewScheduler(ctx context.Context, logger *logrus.Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{
		ctx:    ctx,
		logger: logger,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.SkipIfStillRunning(cl)),
		),
	}
}

// Every returns the cron spec for a fixed interval.
func Every(d time.Duration) string {
	return "@every " + d.String()
}

// AddJob registers fn to run on spec.
func (s *Scheduler) AddJob(name, spec string, timeout time.Duration, fn Job) error {
	if _, err := s.cron.AddFunc(spec, func() {
		_ = s.RunNow(name, timeout, fn)
	}); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	s.logger.WithFields(logrus.Fields{
		"job":      name,
		"schedule": spec,
	}).Info("Job scheduled")
	return nil
}

// RunNow executes fn once, outside the cron clock, with the same timeout, logging
// and panic recovery as a scheduled run.
func (s *Scheduler) RunNow(name string, timeout time.Duration, fn Job) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	start := time.Now()
	err := SafeRun(func() error { return fn(ctx) })
	fields := logrus.Fields{
		"job":      name,
		"duration": time.Since(start).String(),
	}
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Scheduled job failed")
		return err
	}
	s.logger.WithFields(fields).Debug("Scheduled job finished")
	return nil
}

// Start the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop the scheduler. The returned context is done once running jobs complete.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// SafeRun executes fn and turns a panic into an error.
func SafeRun(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

// cronLogger routes cron's own messages into logrus.
type cronLogger struct {
	logger *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).Debug("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.WithFields(toFields(keysAndValues)).WithError(err).Error("cron: " + msg)
}

func toFields(keysAndValues []interface{}) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
