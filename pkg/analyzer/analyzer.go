package analyzer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/iterlog/pkg/config"
	"github.com/ccollicutt/iterlog/pkg/parser"
)

// Analyzer runs every metric engine over a line source.
type Analyzer struct {
	cfg     *config.Config
	engines []Engine
	logger  logrus.FieldLogger

	metricFilter map[string]bool // nil means all metrics
}

// Option configures analyzer behavior.
type Option func(*Analyzer)

// WithLogger sets the logger used for debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetricFilter limits analysis to the named metrics.
func WithMetricFilter(names []string) Option {
	return func(a *Analyzer) {
		if len(names) > 0 {
			a.metricFilter = make(map[string]bool, len(names))
			for _, n := range names {
				a.metricFilter[n] = true
			}
		}
	}
}

// NewAnalyzer creates an analyzer from a validated configuration.
func NewAnalyzer(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		cfg:     cfg,
		engines: make([]Engine, 0, len(cfg.Metrics)),
		logger:  discardLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	for i := range cfg.Metrics {
		m := &cfg.Metrics[i]

		if a.metricFilter != nil && !a.metricFilter[m.Name] {
			continue
		}

		engine, err := NewMetricEngine(m, a.logger)
		if err != nil {
			return nil, fmt.Errorf("creating engine for metric %q: %w", m.Name, err)
		}
		a.engines = append(a.engines, engine)
	}

	if len(a.engines) == 0 {
		return nil, fmt.Errorf("no metrics to extract (check --metric filter)")
	}

	return a, nil
}

// Analyze reads every line of source and returns the reduced series.
// Any malformed envelope or metric line aborts the whole analysis.
func (a *Analyzer) Analyze(ctx context.Context, source parser.LineSource) (*Result, error) {
	result := &Result{
		Series: make([]*Series, 0, len(a.engines)),
		Metadata: Metadata{
			Source:    source.Name(),
			StartTime: time.Now(),
		},
	}

	for _, engine := range a.engines {
		engine.Reset()
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source.Name(), err)
		}

		result.Metadata.EnvelopeLines++
		observeTimestamp(&result.Metadata, line.Timestamp)

		carried := false
		for _, engine := range a.engines {
			matched, err := engine.Process(ctx, line)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", source.Name(), err)
			}
			carried = carried || matched
		}
		if carried {
			result.Metadata.MetricLines++
		}
	}

	for _, engine := range a.engines {
		series, err := engine.Finalize(ctx)
		if err != nil {
			return nil, fmt.Errorf("finalizing metric %q: %w", engine.Name(), err)
		}
		result.Series = append(result.Series, series)
	}

	result.Metadata.EndTime = time.Now()

	a.logger.WithFields(logrus.Fields{
		"source":   result.Metadata.Source,
		"envelope": result.Metadata.EnvelopeLines,
		"metric":   result.Metadata.MetricLines,
	}).Info("analysis complete")

	return result, nil
}

func observeTimestamp(m *Metadata, ts time.Time) {
	if ts.IsZero() {
		return
	}
	if m.FirstTimestamp.IsZero() || ts.Before(m.FirstTimestamp) {
		m.FirstTimestamp = ts
	}
	if ts.After(m.LastTimestamp) {
		m.LastTimestamp = ts
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
