package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

type jsonSum struct {
	Mode     Mode      `json:"mode"`
	Sum      []float64 `json:"sum"`
	Metadata Metadata  `json:"metadata"`
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		return encoder.Encode(report.Metadata)
	}

	// An empty sum is still reported as an empty list.
	if report.Mode == ModeSum {
		sum := report.Sum
		if sum == nil {
			sum = []float64{}
		}
		return encoder.Encode(jsonSum{Mode: report.Mode, Sum: sum, Metadata: report.Metadata})
	}

	return encoder.Encode(report)
}
