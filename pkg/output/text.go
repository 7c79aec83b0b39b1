package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/ccollicutt/iterlog/pkg/analyzer"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
	au   aurora.Aurora
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts, au: aurora.NewAurora(opts.Color)}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}

	fmt.Fprintf(w, "%s\n\n", f.au.Bold(fmt.Sprintf("=== iterlog %s ===", report.Mode)))

	switch report.Mode {
	case ModeSummary:
		for _, src := range report.Sources {
			f.formatSource(src, w)
		}
	case ModeSum:
		f.formatSeries(SeriesValues{Name: analyzer.TotalName, Values: report.Sum}, w)
	default:
		for _, s := range report.Series {
			f.formatSeries(s, w)
		}
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "%d source(s), %d envelope lines, %d metric lines\n",
		len(report.Metadata.Sources),
		report.Metadata.EnvelopeLines,
		report.Metadata.MetricLines)

	return nil
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "iterlog: %d source(s), %d envelope lines, %d metric lines\n",
		len(report.Metadata.Sources),
		report.Metadata.EnvelopeLines,
		report.Metadata.MetricLines)
	return nil
}

func (f *TextFormatter) formatSeries(s SeriesValues, w io.Writer) {
	fmt.Fprintf(w, "[%s] %d iteration(s)\n", f.au.Cyan(strings.ToUpper(s.Name)), len(s.Values))
	if len(s.Values) == 0 {
		fmt.Fprintf(w, "  %s\n\n", f.au.Faint("no samples"))
		return
	}
	fmt.Fprintf(w, "  %s\n\n", strings.Join(formatValues(s.Values, f.opts.Precision), " "))
}

func (f *TextFormatter) formatSource(src *SourceSummary, w io.Writer) {
	fmt.Fprintf(w, "[%s] %d envelope lines, %d metric lines", f.au.Bold(src.Source), src.EnvelopeLines, src.MetricLines)
	if src.Span > 0 {
		fmt.Fprintf(w, ", span %s", src.Span)
	}
	fmt.Fprintln(w)

	p := f.opts.Precision
	for _, m := range src.Metrics {
		fmt.Fprintf(w, "  %s\n", f.au.Cyan(m.Metric))
		if m.Iterations == 0 {
			fmt.Fprintf(w, "    %s\n", f.au.Faint("no samples"))
			continue
		}

		fmt.Fprintf(w, "    iterations: %d (%d samples)\n", m.Iterations, m.Samples)
		fmt.Fprintf(w, "    total: %s  mean: %s  median: %s  stddev: %s\n",
			formatValue(m.Total, p), formatValue(m.Mean, p), formatValue(m.Median, p), formatValue(m.StdDev, p))
		fmt.Fprintf(w, "    min: %s  p95: %s  max: %s\n",
			formatValue(m.Min, p), formatValue(m.P95, p), f.au.Yellow(formatValue(m.Max, p)))

		if m.Slowest != nil {
			fmt.Fprintf(w, "    slowest: iteration %d on rank %d (line %d)\n",
				m.Slowest.Iteration, m.Slowest.Rank, m.Slowest.Line)
		}
		if len(m.Stragglers) > 0 {
			parts := make([]string, len(m.Stragglers))
			for i, rc := range m.Stragglers {
				parts[i] = fmt.Sprintf("rank %d x%d", rc.Rank, rc.Iterations)
			}
			fmt.Fprintf(w, "    stragglers: %s\n", strings.Join(parts, ", "))
		}
	}
	fmt.Fprintln(w)
}
