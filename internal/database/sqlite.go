package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/etwin/twinboard/internal/models"
)

// SQLiteRepo implements MetricRepository on a single SQLite file. Timestamps are
// stored as unix seconds so buckets are plain integer arithmetic.
type SQLiteRepo struct {
	db     *sql.DB
	DBPath string
}

// NewSQLiteRepo opens (and creates when needed) the database at dbPath.
func NewSQLiteRepo(dbPath string) (*SQLiteRepo, error) {
	if dbPath == "" {
		dbPath = filepath.Join("data", "twinboard.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite serializes writers anyway; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS metric_samples (
		ts     INTEGER NOT NULL,
		metric TEXT    NOT NULL,
		value  REAL    NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_metric_samples_metric_ts ON metric_samples(metric, ts);`

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteRepo{db: db, DBPath: dbPath}, nil
}

func (r *SQLiteRepo) InsertSample(ctx context.Context, sample models.MetricSample) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO metric_samples(ts, metric, value) VALUES(?, ?, ?)",
		sample.Time.Unix(), sample.Metric, sample.Value,
	)
	return err
}

func (r *SQLiteRepo) BatchInsertSamples(ctx context.Context, samples []models.MetricSample) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO metric_samples(ts, metric, value) VALUES(?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, sample := range samples {
		if _, err := stmt.ExecContext(ctx, sample.Time.Unix(), sample.Metric, sample.Value); err != nil {
			return fmt.Errorf("failed to insert sample %s: %w", sample.Metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Query(
	ctx context.Context,
	metric string,
	start, end time.Time,
	window string,
	aggregation string,
) ([]models.TimeSeriesData, error) {
	width, err := checkQuery(window, aggregation)
	if err != nil {
		return nil, err
	}
	bucket := int64(width / time.Second)

	query := fmt.Sprintf(`
		SELECT (ts / ?) * ? AS bucket, %s(value)
		FROM metric_samples
		WHERE metric = ? AND ts >= ? AND ts < ?
		GROUP BY bucket
		ORDER BY bucket`, aggregation)

	rows, err := r.db.QueryContext(ctx, query, bucket, bucket, metric, start.Unix(), end.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []models.TimeSeriesData{}
	for rows.Next() {
		var ts int64
		var value float64
		if err := rows.Scan(&ts, &value); err != nil {
			return nil, err
		}
		results = append(results, models.TimeSeriesData{Time: time.Unix(ts, 0).UTC(), Value: value})
	}
	return results, rows.Err()
}

func (r *SQLiteRepo) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM metric_samples WHERE ts < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune samples: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection
func (r *SQLiteRepo) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

var _ MetricRepository = (*SQLiteRepo)(nil)
