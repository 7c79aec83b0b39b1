package output

import (
	"context"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ccollicutt/iterlog/pkg/analyzer"
)

// TableFormatter renders reports as aligned text tables.
type TableFormatter struct {
	opts FormatOptions
}

// NewTableFormatter creates a new table formatter with the given options.
func NewTableFormatter(opts FormatOptions) *TableFormatter {
	return &TableFormatter{opts: opts}
}

// Name returns the format name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format renders the report as a table. Series become columns indexed by
// position; summary mode prints one row per source and metric.
func (f *TableFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	switch report.Mode {
	case ModeSummary:
		f.summaryTable(t, report)
	case ModeSum:
		f.seriesTable(t, []SeriesValues{{Name: analyzer.TotalName, Values: report.Sum}})
	default:
		f.seriesTable(t, report.Series)
	}

	t.Render()
	return nil
}

func (f *TableFormatter) seriesTable(t table.Writer, series []SeriesValues) {
	header := table.Row{"#"}
	rows := 0
	for _, s := range series {
		header = append(header, s.Name)
		if len(s.Values) > rows {
			rows = len(s.Values)
		}
	}
	t.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(series))
	for i := range series {
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)

	for i := 0; i < rows; i++ {
		row := table.Row{i}
		for _, s := range series {
			if i < len(s.Values) {
				row = append(row, formatValue(s.Values[i], f.opts.Precision))
			} else {
				row = append(row, "")
			}
		}
		t.AppendRow(row)
	}
}

func (f *TableFormatter) summaryTable(t table.Writer, report *Report) {
	t.AppendHeader(table.Row{
		"Source", "Metric", "Iterations", "Samples", "Total", "Mean", "Median",
		"P95", "Min", "Max", "StdDev", "Slowest", "Rank",
	})

	p := f.opts.Precision
	for _, src := range report.Sources {
		for _, m := range src.Metrics {
			slowIter, slowRank := "-", "-"
			if m.Slowest != nil {
				slowIter = strconv.Itoa(m.Slowest.Iteration)
				slowRank = strconv.Itoa(m.Slowest.Rank)
			}
			t.AppendRow(table.Row{
				src.Source, m.Metric, m.Iterations, m.Samples,
				formatValue(m.Total, p), formatValue(m.Mean, p), formatValue(m.Median, p),
				formatValue(m.P95, p), formatValue(m.Min, p), formatValue(m.Max, p),
				formatValue(m.StdDev, p), slowIter, slowRank,
			})
		}
		t.AppendSeparator()
	}
}
