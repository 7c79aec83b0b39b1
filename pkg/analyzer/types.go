// Package analyzer extracts per-iteration timings from envelope lines and
// reduces them to one maximum per iteration.
package analyzer

import "time"

// Sample is the reduced value of one iteration in one series.
type Sample struct {
	// Iteration is the iteration index from the log message.
	Iteration int `json:"iteration"`

	// Seconds is the largest elapsed time seen for the iteration.
	Seconds float64 `json:"seconds"`

	// Rank is the process that reported Seconds, or -1 if unknown.
	Rank int `json:"rank"`

	// Line is the input line number that reported Seconds.
	Line int `json:"line"`

	// Count is how many log lines were folded into this sample.
	Count int `json:"count"`
}

// Result contains the reduced series of one input.
type Result struct {
	// Series holds one entry per configured metric, in configuration order.
	Series []*Series

	// Metadata provides context about the analysis.
	Metadata Metadata
}

// Metadata provides context about an analysis run.
type Metadata struct {
	// Source names the input.
	Source string

	// EnvelopeLines is the number of lines that unwrapped.
	EnvelopeLines int

	// MetricLines is the number of lines that carried a metric.
	MetricLines int

	// FirstTimestamp and LastTimestamp bound the parseable envelope stamps.
	FirstTimestamp time.Time
	LastTimestamp  time.Time

	// StartTime and EndTime bracket the analysis itself.
	StartTime time.Time
	EndTime   time.Time
}

// Span returns the wall-clock time covered by the log, or zero.
func (m Metadata) Span() time.Duration {
	if m.FirstTimestamp.IsZero() || m.LastTimestamp.IsZero() {
		return 0
	}
	return m.LastTimestamp.Sub(m.FirstTimestamp)
}

// Lookup returns the series with the given name, or nil.
func (r *Result) Lookup(name string) *Series {
	for _, s := range r.Series {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Sum returns the positional sum of all series.
func (r *Result) Sum() []float64 {
	return SumSeries(r.Series...)
}

// IsEmpty reports whether no series holds any iteration.
func (r *Result) IsEmpty() bool {
	for _, s := range r.Series {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}
