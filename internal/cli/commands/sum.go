package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/iterlog/pkg/output"
)

// NewSumCommand creates the sum command.
func NewSumCommand() *cobra.Command {
	opts := defaultReportOptions()

	cmd := &cobra.Command{
		Use:   "sum [infile...]",
		Short: "Print the positional sum of all metric series",
		Long: `Extract per-iteration timings and print one line holding, for each
position, the sum of every metric's per-iteration maximum.

Series are added by position, not by iteration number; a shorter series
counts as zero past its end. Several inputs are merged by timestamp as
in the report command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputArgs(args)
			if err != nil {
				return err
			}
			return runReport(cmd, paths, output.ModeSum, opts)
		},
	}

	addReportFlags(cmd, opts)
	return cmd
}

// NewLogParseSumCommand creates the flagless log_parse_sum command.
func NewLogParseSumCommand() *cobra.Command {
	opts := defaultReportOptions()
	opts.Builtin = true

	return &cobra.Command{
		Use:   "log_parse_sum [infile]",
		Short: "Print computation plus communication time per iteration",
		Long: `Print one comma-separated line: the per-iteration maximum computation
time plus the per-iteration maximum communication time, added by position.
Reads standard input when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, []string{inputArg(args)}, output.ModeSum, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
}
