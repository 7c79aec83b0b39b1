package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/iterlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an iterlog configuration file without reading any log.

Checks:
  - YAML syntax
  - Envelope patterns compile and have a "message" group
  - Metric names are unique and patterns capture iteration and seconds
  - Output precision and separator`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Select:    %s\n", cfg.Envelope.SelectPattern)
	fmt.Fprintf(w, "  Envelope:  %s\n", cfg.Envelope.Pattern)
	fmt.Fprintf(w, "  Timestamp: %s\n", cfg.Envelope.TimestampLayout)
	fmt.Fprintf(w, "  Output:    precision %d, separator %q\n", cfg.Output.Precision, cfg.Output.Separator)

	fmt.Fprintf(w, "\nMetrics:\n")
	for i, m := range cfg.Metrics {
		fmt.Fprintf(w, "  %d. %s\n", i+1, m.Name)
		fmt.Fprintf(w, "     %s\n", m.CompiledPattern())
	}

	return nil
}
