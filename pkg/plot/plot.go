// Package plot renders extracted series as line charts.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ccollicutt/iterlog/pkg/analyzer"
)

// ErrNothingToPlot is returned when every series is empty.
var ErrNothingToPlot = errors.New("no samples to plot")

// Extensions lists the output formats chosen by file extension.
var Extensions = []string{".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff"}

var palette = []color.RGBA{
	{0, 114, 178, 255},   // blue
	{220, 53, 69, 255},   // red
	{102, 194, 165, 255}, // green
	{255, 159, 64, 255},  // orange
	{153, 102, 255, 255}, // purple
}

var totalColor = color.RGBA{64, 64, 64, 255}

// Options controls chart rendering.
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length

	// Total adds the positional sum of all series as a dashed line.
	Total bool
}

// DefaultOptions returns an 8x4 inch chart with the total line.
func DefaultOptions() Options {
	return Options{
		Width:  8 * vg.Inch,
		Height: 4 * vg.Inch,
		Total:  true,
	}
}

// New builds a chart of every non-empty series in result, with iteration
// position on the X axis and seconds on the Y axis.
func New(result *analyzer.Result, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = result.Metadata.Source
	}
	p.X.Label.Text = "iteration (first-seen order)"
	p.Y.Label.Text = "seconds (max across ranks)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, s := range result.Series {
		if s.Len() == 0 {
			continue
		}
		line, err := newLine(s.Values(), palette[i%len(palette)])
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Name, err)
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)
		drawn++
	}

	if drawn == 0 {
		return nil, ErrNothingToPlot
	}

	if opts.Total && drawn > 1 {
		line, err := newLine(result.Sum(), totalColor)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", analyzer.TotalName, err)
		}
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(analyzer.TotalName, line)
	}

	return p, nil
}

// Render writes the chart of result to path. The extension picks the format.
func Render(result *analyzer.Result, path string, opts Options) error {
	if !SupportedPath(path) {
		return fmt.Errorf("unsupported chart format %q (want one of: %s)",
			filepath.Ext(path), strings.Join(Extensions, ", "))
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	p, err := New(result, opts)
	if err != nil {
		return err
	}

	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}

// SupportedPath reports whether the extension of path is a known chart format.
func SupportedPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func newLine(values []float64, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(2)
	return line, nil
}
