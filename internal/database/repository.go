//go:generate mockgen -destination=./mocks/repository.go -package=mocks . MetricRepository

// Package database stores the dashboard's headline metrics so trend charts can be
// drawn from more than the latest snapshot.
//
// Two backends implement MetricRepository:
//   - PostgresRepo: TimescaleDB hypertable, bucketed with time_bucket()
//   - SQLiteRepo: single-file store for standalone deployments
//
// Example usage:
//
//	repo, err := database.Open("sqlite", "data/twinboard.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
//	points, err := repo.Query(ctx, "sdg_composite", start, end, "1h", "AVG")
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etwin/twinboard/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverNone     = "none"
)

var (
	ErrInvalidWindow      = errors.New("invalid window")
	ErrInvalidAggregation = errors.New("invalid aggregation")
	ErrUnknownDriver      = errors.New("unknown history driver")
)

var windows = map[string]time.Duration{
	"1m": time.Minute,
	"5m": 5 * time.Minute,
	"1h": time.Hour,
	"1d": 24 * time.Hour,
}

var aggregations = map[string]bool{
	"MIN": true,
	"MAX": true,
	"AVG": true,
	"SUM": true,
}

// WindowDuration returns the bucket width of a window name (1m, 5m, 1h, 1d).
func WindowDuration(window string) (time.Duration, error) {
	d, ok := windows[window]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidWindow, window)
	}
	return d, nil
}

// ValidAggregation reports whether agg is one of MIN, MAX, AVG, SUM.
func ValidAggregation(agg string) bool {
	return aggregations[agg]
}

// MetricRepository persists metric samples and answers bucketed range queries.
type MetricRepository interface {
	// InsertSample stores one sample.
	InsertSample(ctx context.Context, sample models.MetricSample) error

	// BatchInsertSamples stores all samples in one transaction.
	BatchInsertSamples(ctx context.Context, samples []models.MetricSample) error

	// Query aggregates metric over [start, end) into window-sized buckets,
	// oldest bucket first.
	Query(ctx context.Context, metric string, start, end time.Time, window, aggregation string) ([]models.TimeSeriesData, error)

	// Prune deletes samples older than before and returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the configured backend.
func Open(driver, dsn string) (MetricRepository, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresRepo(dsn)
	case DriverSQLite:
		return NewSQLiteRepo(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func checkQuery(window, aggregation string) (time.Duration, error) {
	if !ValidAggregation(aggregation) {
		return 0, fmt.Errorf("%w: %s", ErrInvalidAggregation, aggregation)
	}
	return WindowDuration(window)
}
