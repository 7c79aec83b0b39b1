package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/ccollicutt/iterlog/pkg/plot"
)

// PlotOptions holds command-line options for the plot command.
type PlotOptions struct {
	ConfigPath string
	Out        string
	Title      string
	Width      float64
	Height     float64
	Metrics    []string
	NoTotal    bool
}

// NewPlotCommand creates the plot command.
func NewPlotCommand() *cobra.Command {
	opts := &PlotOptions{Out: "series.png", Width: 8, Height: 4}

	cmd := &cobra.Command{
		Use:   "plot [infile...]",
		Short: "Chart per-iteration times",
		Long: `Draw every metric series, and their positional sum, as lines over
iteration position. The output extension picks the format
(png, svg, pdf, eps, jpg, tif). Several inputs are merged by timestamp.

Example:
  iterlog plot run.log --out run.svg
  iterlog plot run.log.gz --metric computation --no-total`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := inputArgs(args)
			if err != nil {
				return err
			}
			return runPlot(cmd, paths, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (default: built-in log format)")
	cmd.Flags().StringVar(&opts.Out, "out", opts.Out, "Chart file to write")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Chart title (default: input name)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "Chart width in inches")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "Chart height in inches")
	cmd.Flags().StringSliceVar(&opts.Metrics, "metric", nil, "Plot specific metric(s) only (can be repeated)")
	cmd.Flags().BoolVar(&opts.NoTotal, "no-total", false, "Do not draw the summed series")

	return cmd
}

func runPlot(cmd *cobra.Command, paths []string, opts *PlotOptions) error {
	ctx := commandContext(cmd)

	if !plot.SupportedPath(opts.Out) {
		return fmt.Errorf("unsupported chart file %q", opts.Out)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %gx%g", opts.Width, opts.Height)
	}

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	result, err := analyzeInputs(cmd, cfg, paths, opts.Metrics)
	if err != nil {
		return err
	}

	plotOpts := plot.Options{
		Title:  opts.Title,
		Width:  vg.Length(opts.Width) * vg.Inch,
		Height: vg.Length(opts.Height) * vg.Inch,
		Total:  !opts.NoTotal,
	}
	if err := plot.Render(result, opts.Out, plotOpts); err != nil {
		return fmt.Errorf("plotting %s: %w", result.Metadata.Source, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", opts.Out)
	return nil
}
