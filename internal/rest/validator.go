package rest

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etwin/twinboard/internal/database"
)

const maxTimeRange = 2 * 365 * 24 * time.Hour

// ValidationError is a client mistake; handlers answer it with 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// TrendQuery asks for one recorded metric aggregated into buckets.
type TrendQuery struct {
	Metric      string    `json:"metric"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Window      string    `json:"window"`
	Aggregation string    `json:"aggregation"`
}

type TrendValidator struct {
	isMetric func(string) bool
}

func NewTrendValidator(isMetric func(string) bool) *TrendValidator {
	return &TrendValidator{isMetric: isMetric}
}

// Validate checks if the query parameters are valid
func (v *TrendValidator) Validate(q TrendQuery) error {
	if !v.isMetric(q.Metric) {
		return invalid("unknown metric: %s", q.Metric)
	}

	// Validate timestamps are present
	if q.Start.IsZero() || q.End.IsZero() || q.Start.Equal(time.Unix(0, 0)) || q.End.Equal(time.Unix(0, 0)) {
		return invalid("missing timestamp")
	}

	// Validate time range
	if !q.Start.Before(q.End) {
		return invalid("start time must be before end time")
	}

	// Validate maximum time range
	if q.End.Sub(q.Start) > maxTimeRange {
		return invalid("time range exceeds maximum allowed")
	}

	if _, err := database.WindowDuration(q.Window); err != nil {
		return invalid("invalid window: %s", q.Window)
	}

	if !database.ValidAggregation(q.Aggregation) {
		return invalid("invalid aggregation: %s", q.Aggregation)
	}

	return nil
}

// ParseTrendQuery reads a TrendQuery from the URL. start and end are RFC 3339;
// window defaults to 1h and aggregation to AVG (case-insensitive).
func ParseTrendQuery(r *http.Request) (TrendQuery, error) {
	values := r.URL.Query()
	q := TrendQuery{
		Metric:      values.Get("metric"),
		Window:      values.Get("window"),
		Aggregation: strings.ToUpper(values.Get("aggregation")),
	}
	if q.Window == "" {
		q.Window = "1h"
	}
	if q.Aggregation == "" {
		q.Aggregation = "AVG"
	}

	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"start", &q.Start}, {"end", &q.End}} {
		raw := values.Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return q, invalid("invalid %s: %s", p.name, raw)
		}
		*p.dst = t
	}
	return q, nil
}
