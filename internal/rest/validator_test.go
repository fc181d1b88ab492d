package rest

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etwin/twinboard/internal/dashboard"
)

func TestTrendValidator_Validate(t *testing.T) {
	validator := NewTrendValidator(dashboard.IsMetric)
	now := time.Now()

	valid := TrendQuery{
		Metric:      dashboard.MetricSDGComposite,
		Start:       now.Add(-24 * time.Hour),
		End:         now,
		Window:      "1h",
		Aggregation: "AVG",
	}

	tests := []struct {
		name       string
		mutate     func(q *TrendQuery)
		errMessage string
	}{
		{
			name:   "valid request",
			mutate: func(q *TrendQuery) {},
		},
		{
			name:       "unknown metric",
			mutate:     func(q *TrendQuery) { q.Metric = "happiness" },
			errMessage: "unknown metric: happiness",
		},
		{
			name:       "missing timestamp",
			mutate:     func(q *TrendQuery) { q.Start = time.Time{} },
			errMessage: "missing timestamp",
		},
		{
			name:       "epoch timestamp",
			mutate:     func(q *TrendQuery) { q.End = time.Unix(0, 0) },
			errMessage: "missing timestamp",
		},
		{
			name:       "invalid time range",
			mutate:     func(q *TrendQuery) { q.Start, q.End = q.End, q.Start },
			errMessage: "start time must be before end time",
		},
		{
			name:       "empty time range",
			mutate:     func(q *TrendQuery) { q.Start = q.End },
			errMessage: "start time must be before end time",
		},
		{
			name:       "exceeds max time range",
			mutate:     func(q *TrendQuery) { q.Start = now.Add(-3 * 365 * 24 * time.Hour) },
			errMessage: "time range exceeds maximum allowed",
		},
		{
			name:       "invalid window",
			mutate:     func(q *TrendQuery) { q.Window = "2h" },
			errMessage: "invalid window: 2h",
		},
		{
			name:       "empty window",
			mutate:     func(q *TrendQuery) { q.Window = "" },
			errMessage: "invalid window: ",
		},
		{
			name:       "invalid aggregation",
			mutate:     func(q *TrendQuery) { q.Aggregation = "INVALID" },
			errMessage: "invalid aggregation: INVALID",
		},
		{
			name:       "empty aggregation",
			mutate:     func(q *TrendQuery) { q.Aggregation = "" },
			errMessage: "invalid aggregation: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			err := validator.Validate(q)
			if tt.errMessage == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.errMessage, err.Error())
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestParseTrendQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/trends?metric=aqi&start=2026-01-01T00:00:00Z&end=2026-01-02T00:00:00Z&aggregation=max", nil)
	q, err := ParseTrendQuery(r)
	require.NoError(t, err)
	assert.Equal(t, "aqi", q.Metric)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), q.Start)
	assert.Equal(t, "1h", q.Window)
	assert.Equal(t, "MAX", q.Aggregation)

	r = httptest.NewRequest("GET", "/api/trends?metric=aqi&start=yesterday", nil)
	_, err = ParseTrendQuery(r)
	require.Error(t, err)
	assert.Equal(t, "invalid start: yesterday", err.Error())
}
