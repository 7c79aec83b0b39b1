package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/iterlog/pkg/analyzer"
	"github.com/ccollicutt/iterlog/pkg/config"
	"github.com/ccollicutt/iterlog/pkg/output"
	"github.com/ccollicutt/iterlog/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Logger receives diagnostics; results always go to the command's output.
var Logger = newLogger()

const (
	// EnvLogLevel sets the log level when --log-level is not given.
	EnvLogLevel = "ITERLOG_LOG_LEVEL"

	// DefaultLogLevel keeps the compatibility binaries quiet.
	DefaultLogLevel = "warn"
)

// ConfigureLogging sets the level and destination of Logger. An empty level
// falls back to ITERLOG_LOG_LEVEL, then DefaultLogLevel.
func ConfigureLogging(level string, w io.Writer) error {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if level == "" {
		level = DefaultLogLevel
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	Logger.SetLevel(lvl)
	Logger.SetOutput(w)
	Logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig loads path, or the built-in configuration when path is empty.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg, err := config.LoadDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading default config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	Logger.WithField("path", path).Debug("config loaded")
	return cfg, nil
}

func newUnwrapper(cfg *config.Config) *parser.Unwrapper {
	return parser.NewUnwrapper(
		cfg.Envelope.CompiledSelectPattern(),
		cfg.Envelope.CompiledPattern(),
		cfg.Envelope.TimestampLayout,
	)
}

// analyzeInputs reads every input in full and reduces them as one run.
// Several inputs are merged by envelope timestamp. The whole run is parsed
// before anything is printed.
func analyzeInputs(cmd *cobra.Command, cfg *config.Config, paths []string, metrics []string) (*analyzer.Result, error) {
	ctx := commandContext(cmd)

	a, err := analyzer.NewAnalyzer(cfg,
		analyzer.WithLogger(Logger),
		analyzer.WithMetricFilter(metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("creating analyzer: %w", err)
	}

	unwrapper := newUnwrapper(cfg)
	texts := make([]*parser.TextSource, 0, len(paths))
	for _, path := range paths {
		text, err := parser.ReadFile(ctx, path, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		texts = append(texts, parser.NewTextSource(parser.DisplayName(path), text, unwrapper))
	}

	var source parser.LineSource
	if len(texts) == 1 {
		source = texts[0]
	} else {
		sources := make([]parser.LineSource, len(texts))
		for i, ts := range texts {
			sources[i] = ts
		}
		source = parser.NewMergedSource(sources...)
	}
	defer source.Close()

	result, err := a.Analyze(ctx, source)
	if err != nil {
		return nil, err
	}

	for _, ts := range texts {
		Logger.WithFields(logrus.Fields{
			"source":   ts.Name(),
			"lines":    ts.LinesRead(),
			"selected": ts.LinesSelected(),
		}).Debug("input read")
	}

	return result, nil
}

// inputArgs expands the positional inputs; none means stdin.
func inputArgs(args []string) ([]string, error) {
	paths, err := parser.ExpandInputs(args)
	if err != nil {
		return nil, fmt.Errorf("expanding inputs: %w", err)
	}
	return paths, nil
}

// inputArg returns the single optional positional input, "-" for stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

// formatOptions merges flag overrides into the configured output settings.
// A negative precision or empty separator keeps the configured value.
func formatOptions(cfg *config.Config, precision int, separator string) (output.FormatOptions, error) {
	opts := output.FormatOptions{
		Precision: cfg.Output.Precision,
		Separator: cfg.Output.Separator,
	}
	if precision >= 0 {
		if precision > config.MaxPrecision {
			return opts, fmt.Errorf("precision must be between 0 and %d, got %d", config.MaxPrecision, precision)
		}
		opts.Precision = precision
	}
	if separator != "" {
		opts.Separator = separator
	}
	return opts, nil
}

func writeReport(cmd *cobra.Command, format string, opts output.FormatOptions, report *output.Report) error {
	formatter, err := output.NewFormatter(format, opts)
	if err != nil {
		return err
	}

	if err := formatter.Format(commandContext(cmd), report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}
