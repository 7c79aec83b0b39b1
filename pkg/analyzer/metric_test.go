package analyzer

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/iterlog/pkg/config"
	"github.com/ccollicutt/iterlog/pkg/parser"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	require.NoError(t, config.Validate(cfg))
	return cfg
}

func TestMatcher_Match(t *testing.T) {
	label := config.LabelComputation
	m := NewMatcher("computation", label, regexp.MustCompile(config.MetricPattern(label)))

	tests := []struct {
		name        string
		message     string
		wantMatched bool
		wantErr     bool
		wantIter    int
		wantSeconds float64
	}{
		{
			name:        "valid",
			message:     "Computation time for iteration 3: 1.500000 seconds",
			wantMatched: true,
			wantIter:    3,
			wantSeconds: 1.5,
		},
		{
			name:        "no space before index",
			message:     "Computation time for iteration12: 0.1 seconds",
			wantMatched: true,
			wantIter:    12,
			wantSeconds: 0.1,
		},
		{
			name:        "integer seconds",
			message:     "Computation time for iteration 0: 2 seconds",
			wantMatched: true,
			wantIter:    0,
			wantSeconds: 2,
		},
		{
			name:    "other message",
			message: "Communication time for iteration 0: 0.25 seconds",
		},
		{
			name:    "label not at start",
			message: "rank 0 Computation time for iteration 0: 1 seconds",
		},
		{
			name:        "missing seconds",
			message:     "Computation time for iteration 0: 1.5",
			wantMatched: true,
			wantErr:     true,
		},
		{
			name:        "trailing text",
			message:     "Computation time for iteration 0: 1.5 seconds (warm)",
			wantMatched: true,
			wantErr:     true,
		},
		{
			name:        "two decimal points",
			message:     "Computation time for iteration 0: 1.2.3 seconds",
			wantMatched: true,
			wantErr:     true,
		},
		{
			name:        "negative index",
			message:     "Computation time for iteration -1: 1.0 seconds",
			wantMatched: true,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iter, seconds, matched, err := m.Match(tt.message)
			assert.Equal(t, tt.wantMatched, matched)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantMatched {
				assert.Equal(t, tt.wantIter, iter)
				assert.Equal(t, tt.wantSeconds, seconds)
			}
		})
	}
}

func TestMetricEngine_Process(t *testing.T) {
	cfg := newTestConfig(t)

	engine, err := NewMetricEngine(&cfg.Metrics[0], nil)
	require.NoError(t, err)
	assert.Equal(t, config.MetricComputation, engine.Name())

	ctx := context.Background()
	lines := []*parser.Line{
		{Num: 1, Rank: 0, Message: "Computation time for iteration 5: 2.0 seconds"},
		{Num: 2, Rank: 1, Message: "Communication time for iteration 5: 9.0 seconds"},
		{Num: 3, Rank: 1, Message: "Computation time for iteration 5: 3.5 seconds"},
		{Num: 4, Rank: 0, Message: "Starting iteration 6"},
	}

	var matched int
	for _, line := range lines {
		ok, err := engine.Process(ctx, line)
		require.NoError(t, err)
		if ok {
			matched++
		}
	}
	assert.Equal(t, 2, matched)
	assert.Equal(t, EngineStats{LinesProcessed: 4, LinesMatched: 2}, engine.Stats())

	series, err := engine.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5}, series.Values())
	assert.Equal(t, "3.500000", strconv.FormatFloat(series.Values()[0], 'f', 6, 64))

	engine.Reset()
	assert.Equal(t, EngineStats{}, engine.Stats())
	series, err = engine.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, series.Len())
}

func TestMetricEngine_MalformedIsFatal(t *testing.T) {
	cfg := newTestConfig(t)

	engine, err := NewMetricEngine(&cfg.Metrics[1], nil)
	require.NoError(t, err)

	tests := []struct {
		name      string
		message   string
		wantParse bool
	}{
		{name: "bad shape", message: "Communication time for iteration x: 1.0 seconds"},
		{name: "bad float", message: "Communication time for iteration 1: 1.2.3 seconds", wantParse: true},
		{name: "index past int64", message: "Communication time for iteration 9223372036854775808: 1.0 seconds", wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := engine.Process(context.Background(), &parser.Line{Num: 42, Message: tt.message})
			assert.True(t, matched)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedMetric))
			assert.Contains(t, err.Error(), "line 42")

			var mErr *MetricError
			require.True(t, errors.As(err, &mErr))
			assert.Equal(t, config.MetricCommunication, mErr.Metric)
			assert.Equal(t, tt.wantParse, mErr.Err != nil)
		})
	}
}

func TestNewMatcherFromConfig_Uncompiled(t *testing.T) {
	_, err := NewMatcherFromConfig(&config.MetricConfig{Name: "raw", Label: "x"})
	assert.Error(t, err)
}
