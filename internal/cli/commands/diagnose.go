package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/iterlog/pkg/analyzer"
	"github.com/ccollicutt/iterlog/pkg/config"
	"github.com/ccollicutt/iterlog/pkg/detector"
	"github.com/ccollicutt/iterlog/pkg/parser"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	ConfigPath  string
	Verbose     bool
	Color       bool
	MaxExamples int
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{MaxExamples: 3}

	cmd := &cobra.Command{
		Use:   "diagnose [infile]",
		Short: "Check a log for lines that would stop extraction",
		Long: `Classify every line of a log without stopping at the first problem.

This command reports:
- Whether the configuration loads
- Whether the input can be read
- How many lines are envelope lines, and which ones are malformed
- Whether envelope stamps parse with the configured timestamp layout,
  and a suggested layout when they do not
- How many lines carry each metric, and which ones are malformed

Exit codes:
  0 - No malformed lines
  1 - Malformed lines found; report and sum would fail
  2 - Configuration or runtime error

Example:
  iterlog diagnose run.log
  iterlog diagnose -v --color run.log.gz`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, inputArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file (default: built-in log format)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")
	cmd.Flags().BoolVar(&opts.Color, "color", false, "Colorize status labels")
	cmd.Flags().IntVar(&opts.MaxExamples, "max-examples", opts.MaxExamples, "Malformed lines to show per check")

	return cmd
}

func runDiagnose(cmd *cobra.Command, path string, opts *DiagnoseOptions) error {
	ctx := commandContext(cmd)
	results := []DiagnosticResult{}

	cfg, result := checkConfig(ctx, opts.ConfigPath)
	results = append(results, result)
	if result.Status == "error" {
		return finishDiagnose(cmd, results, opts)
	}

	text, result := checkInput(ctx, path, cmd.InOrStdin())
	results = append(results, result)
	if result.Status == "error" {
		return finishDiagnose(cmd, results, opts)
	}

	results = append(results, checkLines(cfg, text, opts)...)

	return finishDiagnose(cmd, results, opts)
}

func finishDiagnose(cmd *cobra.Command, results []DiagnosticResult, opts *DiagnoseOptions) error {
	if printDiagnostics(cmd.OutOrStdout(), results, opts) > 0 {
		ExitCode = 1
	}
	return nil
}

func checkConfig(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Configuration",
	}

	cfg, err := loadConfig(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	if path == "" {
		result.Message = "Using built-in log format"
	} else {
		result.Message = fmt.Sprintf("Loaded %s", path)
	}
	for _, m := range cfg.Metrics {
		result.Details = append(result.Details, fmt.Sprintf("Metric %s: %s", m.Name, m.CompiledPattern()))
	}
	return cfg, result
}

func checkInput(ctx context.Context, path string, stdin io.Reader) (string, DiagnosticResult) {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Input: %s", parser.DisplayName(path)),
	}

	if !parser.IsStdin(path) {
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			result.Status = "error"
			result.Message = "File does not exist"
			result.Suggests = []string{"Check if the log file path is correct"}
			return "", result
		case err != nil:
			result.Status = "error"
			result.Message = fmt.Sprintf("Cannot access file: %v", err)
			result.Suggests = []string{"Check file permissions"}
			return "", result
		case info.IsDir():
			result.Status = "error"
			result.Message = "Path is a directory, not a file"
			return "", result
		}
	}

	text, err := parser.ReadFile(ctx, path, stdin)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read input: %v", err)
		return "", result
	}

	if text == "" {
		result.Status = "warning"
		result.Message = "Input is empty"
		return text, result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Read %d bytes", len(text))
	return text, result
}

// lineTally counts one category of lines and keeps the first bad ones.
type lineTally struct {
	good     int
	bad      int
	examples []string
}

func (t *lineTally) fail(limit, num int, text string) {
	t.bad++
	if len(t.examples) < limit {
		t.examples = append(t.examples, fmt.Sprintf("line %d: %s", num, truncate(text, 80)))
	}
}

func checkLines(cfg *config.Config, text string, opts *DiagnoseOptions) []DiagnosticResult {
	unwrapper := newUnwrapper(cfg)

	matchers := make([]*analyzer.Matcher, 0, len(cfg.Metrics))
	series := make([]*analyzer.Series, 0, len(cfg.Metrics))
	for i := range cfg.Metrics {
		m, err := analyzer.NewMatcherFromConfig(&cfg.Metrics[i])
		if err != nil {
			return []DiagnosticResult{{Check: "Metrics", Status: "error", Message: err.Error()}}
		}
		matchers = append(matchers, m)
		series = append(series, analyzer.NewSeries(m.Name(), m.Label()))
	}

	lines := strings.Split(text, "\n")
	var skipped int
	envelope := &lineTally{}
	metrics := make([]*lineTally, len(matchers))
	for i := range metrics {
		metrics[i] = &lineTally{}
	}
	ranks := make(map[int]bool)
	stamps := &stampTally{}

	for i, raw := range lines {
		num := i + 1
		if !unwrapper.Selects(raw) {
			skipped++
			continue
		}

		line, ok := unwrapper.Unwrap(num, raw)
		if !ok {
			envelope.fail(opts.MaxExamples, num, raw)
			continue
		}
		envelope.good++
		if line.Rank >= 0 {
			ranks[line.Rank] = true
		}
		stamps.add(line)

		for j, m := range matchers {
			iteration, seconds, matched, err := m.Match(line.Message)
			if !matched {
				continue
			}
			if err != nil {
				metrics[j].fail(opts.MaxExamples, num, line.Message)
				continue
			}
			metrics[j].good++
			series[j].Observe(iteration, seconds, line.Rank, num)
		}
	}

	results := []DiagnosticResult{envelopeResult(envelope, skipped, len(ranks))}
	if stamps.total > 0 {
		results = append(results, timestampResult(cfg.Envelope.TimestampLayout, stamps))
	}
	for j, m := range matchers {
		results = append(results, metricResult(m, metrics[j], series[j], opts))
	}

	Logger.WithField("lines", len(lines)).Debug("diagnosis complete")
	return results
}

func envelopeResult(t *lineTally, skipped, ranks int) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Envelope Lines",
		Details: []string{
			fmt.Sprintf("Skipped (not colored): %d", skipped),
			fmt.Sprintf("Distinct ranks: %d", ranks),
		},
	}

	switch {
	case t.bad > 0:
		result.Status = "error"
		result.Message = fmt.Sprintf("%d malformed of %d selected line(s)", t.bad, t.good+t.bad)
		result.Details = append(result.Details, t.examples...)
		result.Suggests = []string{
			"Selected lines must look like [0;3Xm[stamp] rank ~ message<ESC>[0m",
			"Set envelope.pattern in a config file if the logger format differs",
		}
	case t.good == 0:
		result.Status = "warning"
		result.Message = "No envelope lines found; output will be empty"
		result.Suggests = []string{
			"Check that the log was captured with colors enabled",
		}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d envelope line(s)", t.good)
	}
	return result
}

// stampTally counts envelope stamps and keeps the ones that did not parse.
type stampTally struct {
	total       int
	unparsed    []string
	first, last time.Time
}

func (t *stampTally) add(line *parser.Line) {
	if line.Stamp == "" {
		return
	}
	t.total++
	if line.Timestamp.IsZero() {
		t.unparsed = append(t.unparsed, line.Stamp)
		return
	}
	if t.first.IsZero() || line.Timestamp.Before(t.first) {
		t.first = line.Timestamp
	}
	if line.Timestamp.After(t.last) {
		t.last = line.Timestamp
	}
}

// timestampResult warns when stamps do not parse, since merging inputs
// orders lines by timestamp.
func timestampResult(layout string, t *stampTally) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Timestamps",
	}

	if len(t.unparsed) == 0 {
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d stamp(s) parse with layout %q", t.total, layout)
		result.Details = []string{fmt.Sprintf("Span: %s to %s (%s)",
			t.first.Format(time.RFC3339), t.last.Format(time.RFC3339), t.last.Sub(t.first))}
		return result
	}

	result.Status = "warning"
	result.Message = fmt.Sprintf("%d of %d stamp(s) do not parse with layout %q", len(t.unparsed), t.total, layout)
	result.Details = []string{fmt.Sprintf("Example: %q", t.unparsed[0])}

	detection := detector.New().Detect(t.unparsed)
	best := detection.BestMatch()
	if best == nil {
		result.Suggests = []string{
			"Merged inputs will not be ordered; set envelope.timestamp_layout to a Go time layout",
		}
		return result
	}

	result.Details = append(result.Details, fmt.Sprintf("Detected %s in %.0f%% of %d sampled stamp(s)",
		best.Format.Name, best.Confidence*100, detection.SampledStamps))
	result.Suggests = []string{fmt.Sprintf("Set envelope.timestamp_layout: %q", best.Format.Layout)}
	if detection.AmbiguityNote != "" {
		result.Suggests = append(result.Suggests, detection.AmbiguityNote)
	}
	return result
}

func metricResult(m *analyzer.Matcher, t *lineTally, s *analyzer.Series, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Metric: %s", m.Name()),
	}

	switch {
	case t.bad > 0:
		result.Status = "error"
		result.Message = fmt.Sprintf("%d malformed of %d line(s)", t.bad, t.good+t.bad)
		result.Details = t.examples
		result.Suggests = []string{
			fmt.Sprintf("Lines starting with %q must end in \"N: T seconds\"", m.Label()),
		}
	case t.good == 0:
		result.Status = "warning"
		result.Message = fmt.Sprintf("No lines start with %q", m.Label())
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d line(s), %d iteration(s)", t.good, s.Len())
		if opts.Verbose {
			if sum, err := analyzer.Summarize(s); err == nil && sum.Slowest != nil {
				result.Details = []string{
					fmt.Sprintf("Slowest: iteration %d, %.6f seconds on rank %d",
						sum.Slowest.Iteration, sum.Slowest.Seconds, sum.Slowest.Rank),
				}
			}
		}
	}
	return result
}

// printDiagnostics writes the checklist and returns the number of errors.
func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) int {
	au := aurora.NewAurora(opts.Color)

	fmt.Fprintln(w, "=== iterlog Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon aurora.Value
		switch r.Status {
		case "ok":
			icon = au.Green("PASS")
			okCount++
		case "warning":
			icon = au.Yellow("WARN")
			warnCount++
		default:
			icon = au.Red("FAIL")
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before extracting timings.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nInput is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nInput looks good!")
	}

	return errCount
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
