package analyzer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/iterlog/pkg/config"
	"github.com/ccollicutt/iterlog/pkg/parser"
)

// ErrMalformedMetric is returned when a message carries a metric label but
// not the full "<label> N: T seconds" form.
var ErrMalformedMetric = errors.New("malformed metric line")

// MetricError reports a metric message that could not be parsed.
type MetricError struct {
	Metric  string
	Line    int
	Message string

	// Err is the number parsing failure, if that is what went wrong.
	Err error
}

func (e *MetricError) Error() string {
	msg := fmt.Sprintf("line %d: %v (%s): %q", e.Line, ErrMalformedMetric, e.Metric, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match ErrMalformedMetric and the parse error.
func (e *MetricError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedMetric}
	}
	return []error{ErrMalformedMetric, e.Err}
}

// Matcher recognizes one metric in unwrapped messages.
type Matcher struct {
	name    string
	label   string
	pattern *regexp.Regexp
}

// NewMatcher creates a matcher. Capture group 1 of pattern is the iteration
// and group 2 the elapsed seconds.
func NewMatcher(name, label string, pattern *regexp.Regexp) *Matcher {
	return &Matcher{name: name, label: label, pattern: pattern}
}

// NewMatcherFromConfig creates a matcher from a validated metric config.
func NewMatcherFromConfig(m *config.MetricConfig) (*Matcher, error) {
	pattern := m.CompiledPattern()
	if pattern == nil {
		return nil, fmt.Errorf("metric %q has uncompiled pattern", m.Name)
	}
	return NewMatcher(m.Name, m.Label, pattern), nil
}

// Name returns the metric name.
func (m *Matcher) Name() string {
	return m.name
}

// Label returns the message prefix that selects this metric.
func (m *Matcher) Label() string {
	return m.label
}

// Match extracts the iteration and seconds from message. It returns
// matched=false with a nil error when the message does not start with the
// label, and an ErrMalformedMetric error when it does but the rest is wrong.
func (m *Matcher) Match(message string) (iteration int, seconds float64, matched bool, err error) {
	if !strings.HasPrefix(message, m.label) {
		return 0, 0, false, nil
	}

	sub := m.pattern.FindStringSubmatch(message)
	if sub == nil {
		return 0, 0, true, ErrMalformedMetric
	}

	iteration, err = strconv.Atoi(sub[1])
	if err != nil {
		return 0, 0, true, fmt.Errorf("iteration %q: %w", sub[1], err)
	}

	seconds, err = strconv.ParseFloat(sub[2], 64)
	if err != nil {
		return 0, 0, true, fmt.Errorf("seconds %q: %w", sub[2], err)
	}

	return iteration, seconds, true, nil
}

// EngineStats counts what an engine has seen.
type EngineStats struct {
	LinesProcessed int
	LinesMatched   int
}

// MetricEngine implements Engine for a single metric category.
type MetricEngine struct {
	matcher *Matcher
	logger  logrus.FieldLogger

	series *Series
	stats  EngineStats
}

// NewMetricEngine creates an engine for a validated metric config.
func NewMetricEngine(m *config.MetricConfig, logger logrus.FieldLogger) (*MetricEngine, error) {
	matcher, err := NewMatcherFromConfig(m)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = discardLogger()
	}

	return &MetricEngine{
		matcher: matcher,
		logger:  logger.WithField("metric", m.Name),
		series:  NewSeries(m.Name, m.Label),
	}, nil
}

// Name returns the metric name.
func (e *MetricEngine) Name() string {
	return e.matcher.Name()
}

// Process folds the line into the series if it carries this metric.
func (e *MetricEngine) Process(ctx context.Context, line *parser.Line) (bool, error) {
	e.stats.LinesProcessed++

	iteration, seconds, matched, err := e.matcher.Match(line.Message)
	if !matched {
		return false, nil
	}
	if err != nil {
		mErr := &MetricError{Metric: e.Name(), Line: line.Num, Message: line.Message}
		if !errors.Is(err, ErrMalformedMetric) {
			mErr.Err = err
		}
		return true, mErr
	}

	e.stats.LinesMatched++
	isNew := e.series.Observe(iteration, seconds, line.Rank, line.Num)

	e.logger.WithFields(logrus.Fields{
		"iteration": iteration,
		"seconds":   seconds,
		"rank":      line.Rank,
		"line":      line.Num,
		"new":       isNew,
	}).Debug("sample")

	return true, nil
}

// Finalize returns the reduced series.
func (e *MetricEngine) Finalize(ctx context.Context) (*Series, error) {
	e.logger.WithFields(logrus.Fields{
		"iterations": e.series.Len(),
		"matched":    e.stats.LinesMatched,
		"processed":  e.stats.LinesProcessed,
	}).Debug("series complete")

	return e.series, nil
}

// Stats returns the engine's counters.
func (e *MetricEngine) Stats() EngineStats {
	return e.stats
}

// Reset clears internal state for reuse.
func (e *MetricEngine) Reset() {
	e.series = NewSeries(e.series.Name, e.series.Label)
	e.stats = EngineStats{}
}
