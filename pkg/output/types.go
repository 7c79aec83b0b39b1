// Package output provides formatting and output generation for extracted series.
package output

import (
	"fmt"
	"time"

	"github.com/ccollicutt/iterlog/pkg/analyzer"
)

// Mode selects what a report carries.
type Mode string

const (
	// ModeReport prints every series on its own line.
	ModeReport Mode = "report"

	// ModeSum prints the positional sum of all series.
	ModeSum Mode = "sum"

	// ModeSummary prints distribution statistics per series.
	ModeSummary Mode = "summary"
)

// Report is the complete output of one run.
type Report struct {
	Mode Mode `json:"mode"`

	// Series holds one entry per metric in report mode.
	Series []SeriesValues `json:"series,omitempty"`

	// Sum holds the positional sum in sum mode.
	Sum []float64 `json:"sum,omitempty"`

	// Sources holds per-input statistics in summary mode.
	Sources []*SourceSummary `json:"sources,omitempty"`

	Metadata Metadata `json:"metadata"`
}

// SeriesValues is a metric's values in first-seen order.
type SeriesValues struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// SourceSummary holds the statistics of one input.
type SourceSummary struct {
	Source        string              `json:"source"`
	EnvelopeLines int                 `json:"envelope_lines"`
	MetricLines   int                 `json:"metric_lines"`
	Span          time.Duration       `json:"span"`
	Metrics       []*analyzer.Summary `json:"metrics"`
}

// Metadata provides context about the run.
type Metadata struct {
	// ConfigFile is the configuration used, empty for built-in defaults.
	ConfigFile string `json:"config_file,omitempty"`

	// Sources lists the inputs that were read.
	Sources []string `json:"sources"`

	// EnvelopeLines and MetricLines are totals across all sources.
	EnvelopeLines int `json:"envelope_lines"`
	MetricLines   int `json:"metric_lines"`

	// AnalyzedAt is when the analysis finished.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a report of the given mode. Report and sum modes take
// exactly one result; summary mode takes one or more.
func NewReport(mode Mode, configFile string, results ...*analyzer.Result) (*Report, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to report")
	}
	if mode != ModeSummary && len(results) != 1 {
		return nil, fmt.Errorf("%s mode takes one input, got %d", mode, len(results))
	}

	report := &Report{
		Mode:     mode,
		Metadata: Metadata{ConfigFile: configFile},
	}

	for _, r := range results {
		m := r.Metadata
		report.Metadata.Sources = append(report.Metadata.Sources, m.Source)
		report.Metadata.EnvelopeLines += m.EnvelopeLines
		report.Metadata.MetricLines += m.MetricLines
		report.Metadata.Duration += m.EndTime.Sub(m.StartTime)
		if m.EndTime.After(report.Metadata.AnalyzedAt) {
			report.Metadata.AnalyzedAt = m.EndTime
		}
	}

	switch mode {
	case ModeReport:
		for _, s := range results[0].Series {
			report.Series = append(report.Series, SeriesValues{Name: s.Name, Values: s.Values()})
		}
	case ModeSum:
		report.Sum = results[0].Sum()
	case ModeSummary:
		for _, r := range results {
			metrics, err := analyzer.SummarizeResult(r)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.Metadata.Source, err)
			}
			report.Sources = append(report.Sources, &SourceSummary{
				Source:        r.Metadata.Source,
				EnvelopeLines: r.Metadata.EnvelopeLines,
				MetricLines:   r.Metadata.MetricLines,
				Span:          r.Metadata.Span(),
				Metrics:       metrics,
			})
		}
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	return report, nil
}

// Lines returns the value rows of report and sum modes, one per output line.
func (r *Report) Lines() [][]float64 {
	switch r.Mode {
	case ModeReport:
		lines := make([][]float64, len(r.Series))
		for i, s := range r.Series {
			lines[i] = s.Values
		}
		return lines
	case ModeSum:
		return [][]float64{r.Sum}
	default:
		return nil
	}
}
