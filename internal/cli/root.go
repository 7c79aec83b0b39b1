// Package cli provides the command-line interfaces for iterlog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/iterlog/internal/cli/commands"
)

// Execute runs the iterlog root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:])
}

// ExecuteLogParse runs the log_parse command and returns the exit code.
func ExecuteLogParse() int {
	return run(NewLogParseCommand(), os.Args[1:])
}

// ExecuteLogParseSum runs the log_parse_sum command and returns the exit code.
func ExecuteLogParseSum() int {
	return run(NewLogParseSumCommand(), os.Args[1:])
}

func run(cmd *cobra.Command, args []string) int {
	commands.ExitCode = 0
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 2 // Configuration, input or parse error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "iterlog",
		Short: "Extract per-iteration timings from colorized MPI logs",
		Long: `iterlog reads the colored output of a distributed computation and
extracts how long each iteration spent computing and communicating.

For every iteration it keeps the largest time any rank reported, in the
order iterations first appear, and prints the series as comma-separated
values, statistics, tables or charts.

Lines that do not start with a color code are ignored. A colored line
that is not a well-formed log line, or a metric line whose numbers do
not parse, stops the run with exit code 2.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return commands.ConfigureLogging(logLevel, cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		fmt.Sprintf("Log level: debug, info, warn, error (default $%s or %s)", commands.EnvLogLevel, commands.DefaultLogLevel))

	// Add subcommands
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewSumCommand())
	rootCmd.AddCommand(commands.NewSummaryCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

// NewLogParseCommand creates the standalone log_parse command.
func NewLogParseCommand() *cobra.Command {
	return withEnvLogging(commands.NewLogParseCommand())
}

// NewLogParseSumCommand creates the standalone log_parse_sum command.
func NewLogParseSumCommand() *cobra.Command {
	return withEnvLogging(commands.NewLogParseSumCommand())
}

// withEnvLogging configures logging from the environment only, since the
// standalone commands take no flags.
func withEnvLogging(cmd *cobra.Command) *cobra.Command {
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return commands.ConfigureLogging("", cmd.ErrOrStderr())
	}
	return cmd
}
