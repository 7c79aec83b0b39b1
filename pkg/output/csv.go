package output

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVFormatter prints each series as one separated line of fixed-precision values.
type CSVFormatter struct {
	opts FormatOptions
}

// NewCSVFormatter creates a new csv formatter with the given options.
func NewCSVFormatter(opts FormatOptions) *CSVFormatter {
	if opts.Separator == "" {
		opts.Separator = ","
	}
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format renders the report. Report and sum modes print bare value lines;
// an empty series prints an empty line.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if report.Mode == ModeSummary {
		f.formatSummary(report, bw)
	} else {
		for _, values := range report.Lines() {
			fmt.Fprintln(bw, strings.Join(formatValues(values, f.opts.Precision), f.opts.Separator))
		}
	}

	return bw.Flush()
}

var summaryHeader = []string{
	"source", "metric", "iterations", "samples", "total", "mean", "median",
	"p95", "min", "max", "stddev", "slowest_iteration", "slowest_rank",
}

func (f *CSVFormatter) formatSummary(report *Report, w io.Writer) {
	sep := f.opts.Separator
	fmt.Fprintln(w, strings.Join(summaryHeader, sep))

	for _, src := range report.Sources {
		for _, m := range src.Metrics {
			slowIter, slowRank := "", ""
			if m.Slowest != nil {
				slowIter = strconv.Itoa(m.Slowest.Iteration)
				slowRank = strconv.Itoa(m.Slowest.Rank)
			}

			row := []string{src.Source, m.Metric, strconv.Itoa(m.Iterations), strconv.Itoa(m.Samples)}
			row = append(row, formatValues([]float64{m.Total, m.Mean, m.Median, m.P95, m.Min, m.Max, m.StdDev}, f.opts.Precision)...)
			row = append(row, slowIter, slowRank)
			fmt.Fprintln(w, strings.Join(row, sep))
		}
	}
}
