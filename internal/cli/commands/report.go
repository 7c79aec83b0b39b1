package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/iterlog/pkg/config"
	"github.com/ccollicutt/iterlog/pkg/output"
)

// ReportOptions holds command-line options for the report and sum commands.
type ReportOptions struct {
	ConfigPath string
	Output     string
	Precision  int
	Separator  string
	Metrics    []string
	Color      bool

	// Builtin ignores config files and environment overrides.
	Builtin bool
}

func defaultReportOptions() *ReportOptions {
	return &ReportOptions{Output: "csv", Precision: -1}
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := defaultReportOptions()

	cmd := &cobra.Command{
		Use:   "report [infile...]",
		Short: "Print the per-iteration maximum of every metric",
		Long: `Extract per-iteration timings and print one line per metric.

Each value is the largest time any rank reported for that iteration,
in the order iterations first appear in the log. Reads standard input
when no file is given. Files ending in .gz, .zst or .sz are decompressed.

Several inputs, such as one log per rank, are merged by the timestamp of
each line and reduced as a single run. Arguments may be glob patterns.

Exit codes:
  0 - Success
  2 - Unreadable input, malformed envelope or metric line, or bad config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputArgs(args)
			if err != nil {
				return err
			}
			return runReport(cmd, paths, output.ModeReport, opts)
		},
	}

	addReportFlags(cmd, opts)
	return cmd
}

// NewLogParseCommand creates the flagless log_parse command.
func NewLogParseCommand() *cobra.Command {
	opts := defaultReportOptions()
	opts.Builtin = true

	return &cobra.Command{
		Use:   "log_parse [infile]",
		Short: "Print computation and communication times per iteration",
		Long: `Print two comma-separated lines: the maximum computation time and the
maximum communication time of each iteration. Reads standard input when
no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, []string{inputArg(args)}, output.ModeReport, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}

func addReportFlags(cmd *cobra.Command, opts *ReportOptions) {
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (default: built-in log format)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", opts.Output, "Output format (csv|json|table|text)")
	cmd.Flags().IntVarP(&opts.Precision, "precision", "p", opts.Precision, "Fractional digits (default from config, 6)")
	cmd.Flags().StringVar(&opts.Separator, "separator", "", "Value separator for csv output (default from config, \",\")")
	cmd.Flags().StringSliceVar(&opts.Metrics, "metric", nil, "Extract specific metric(s) only (can be repeated)")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "Colorize text output")
}

func runReport(cmd *cobra.Command, paths []string, mode output.Mode, opts *ReportOptions) error {
	ctx := commandContext(cmd)

	var cfg *config.Config
	var err error
	if opts.Builtin {
		cfg = config.DefaultConfig()
		err = config.Validate(cfg)
	} else {
		cfg, err = loadConfig(ctx, opts.ConfigPath)
	}
	if err != nil {
		return err
	}

	formatOpts, err := formatOptions(cfg, opts.Precision, opts.Separator)
	if err != nil {
		return err
	}
	formatOpts.Color = opts.Color

	result, err := analyzeInputs(cmd, cfg, paths, opts.Metrics)
	if err != nil {
		return err
	}

	report, err := output.NewReport(mode, opts.ConfigPath, result)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	return writeReport(cmd, opts.Output, formatOpts, report)
}
