package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/iterlog/pkg/analyzer"
	"github.com/ccollicutt/iterlog/pkg/output"
)

// SummaryOptions holds command-line options for the summary command.
type SummaryOptions struct {
	ConfigPath string
	Output     string
	Precision  int
	Metrics    []string
	Color      bool
	Quiet      bool
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	opts := &SummaryOptions{Output: "text", Precision: -1}

	cmd := &cobra.Command{
		Use:   "summary [infile...]",
		Short: "Print timing statistics per metric",
		Long: `Summarize the per-iteration maximum times of one or more logs.

For each metric this reports the iteration count, total, mean, median,
p95, min, max and standard deviation, the slowest iteration and the rank
that reported it, and how often each rank was the slowest. When several
metrics are configured their positional sum is summarized as "total".

Arguments may be glob patterns. Reads standard input when no file is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (default: built-in log format)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", opts.Output, "Output format (text|table|json|csv)")
	cmd.Flags().IntVarP(&opts.Precision, "precision", "p", opts.Precision, "Fractional digits (default from config, 6)")
	cmd.Flags().StringSliceVar(&opts.Metrics, "metric", nil, "Summarize specific metric(s) only (can be repeated)")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "Colorize text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Counts only, no statistics")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string, opts *SummaryOptions) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	formatOpts, err := formatOptions(cfg, opts.Precision, "")
	if err != nil {
		return err
	}
	formatOpts.Color = opts.Color
	formatOpts.Quiet = opts.Quiet

	inputs, err := inputArgs(args)
	if err != nil {
		return err
	}

	results := make([]*analyzer.Result, 0, len(inputs))
	for _, in := range inputs {
		result, err := analyzeInputs(cmd, cfg, []string{in}, opts.Metrics)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	report, err := output.NewReport(output.ModeSummary, opts.ConfigPath, results...)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	return writeReport(cmd, opts.Output, formatOpts, report)
}
