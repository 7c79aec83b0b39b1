package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ccollicutt/iterlog/pkg/config"
)

// Formatter renders reports in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (csv, json, table, text).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Precision is the number of fractional digits.
	Precision int

	// Separator joins values in csv output.
	Separator string

	// Color enables ANSI colors in text output.
	Color bool

	// Quiet enables minimal output.
	Quiet bool
}

// DefaultFormatOptions returns options matching the default configuration.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Precision: config.DefaultPrecision,
		Separator: config.DefaultSeparator,
	}
}

// Formats lists the accepted format names.
var Formats = []string{"csv", "json", "table", "text"}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "csv":
		return NewCSVFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "table":
		return NewTableFormatter(opts), nil
	case "text":
		return NewTextFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of: %s)", name, strings.Join(Formats, ", "))
	}
}

func formatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func formatValues(values []float64, precision int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatValue(v, precision)
	}
	return out
}
