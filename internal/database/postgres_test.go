package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketQuery(t *testing.T) {
	tests := []struct {
		window, aggregation string
		interval, selectAgg string
	}{
		{"1m", "MIN", "1 minute", "MIN(value)"},
		{"5m", "MAX", "5 minutes", "MAX(value)"},
		{"1h", "AVG", "1 hour", "AVG(value)"},
		{"1d", "SUM", "1 day", "SUM(value)"},
	}
	for _, tt := range tests {
		t.Run(tt.window+"_"+tt.aggregation, func(t *testing.T) {
			query, interval, err := bucketQuery(tt.window, tt.aggregation)
			require.NoError(t, err)
			assert.Equal(t, tt.interval, interval)
			assert.Contains(t, query, "time_bucket($4::interval, time) AS bucket_time")
			assert.Contains(t, query, tt.selectAgg+" AS agg_value")
			assert.Contains(t, query, "WHERE metric = $1 AND time >= $2 AND time < $3")
			assert.Contains(t, query, "ORDER BY bucket_time")
		})
	}
}

func TestBucketQueryRejectsInput(t *testing.T) {
	_, _, err := bucketQuery("2h", "AVG")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	query, _, err := bucketQuery("1h", "AVG(value); DROP TABLE metric_samples; --")
	assert.ErrorIs(t, err, ErrInvalidAggregation)
	assert.Empty(t, query)

	_, _, err = bucketQuery("1h", "avg")
	assert.ErrorIs(t, err, ErrInvalidAggregation)
}

func TestBucketIntervalsCoverEveryWindow(t *testing.T) {
	for window := range windows {
		interval, ok := bucketIntervals[window]
		assert.True(t, ok, window)
		assert.False(t, strings.TrimSpace(interval) == "", window)
	}
}
