package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return finish(cfg)
}

// LoadDefault returns the built-in configuration with environment overrides applied.
func LoadDefault(_ context.Context) (*Config, error) {
	return finish(DefaultConfig())
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles regex patterns.
func Validate(cfg *Config) error {
	if err := validateEnvelope(&cfg.Envelope); err != nil {
		return fmt.Errorf("envelope: %w", err)
	}

	if len(cfg.Metrics) == 0 {
		return errors.New("metrics: at least one metric is required")
	}

	seen := make(map[string]bool, len(cfg.Metrics))
	for i := range cfg.Metrics {
		m := &cfg.Metrics[i]
		if err := validateMetric(m); err != nil {
			return fmt.Errorf("metrics[%d] (%s): %w", i, m.Name, err)
		}
		if seen[m.Name] {
			return fmt.Errorf("metrics[%d]: duplicate name %q", i, m.Name)
		}
		seen[m.Name] = true
	}

	if err := validateOutput(&cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	return nil
}

// Metric returns the metric with the given name, or nil.
func (c *Config) Metric(name string) *MetricConfig {
	for i := range c.Metrics {
		if c.Metrics[i].Name == name {
			return &c.Metrics[i]
		}
	}
	return nil
}

// MetricPattern builds the strict pattern for a metric label:
// label, optional spaces, iteration, ": ", seconds, " seconds", end of message.
func MetricPattern(label string) string {
	return `^` + regexp.QuoteMeta(label) + ` *(\d+): ([\d.]+) seconds$`
}

func validateEnvelope(env *EnvelopeConfig) error {
	if env.SelectPattern == "" {
		return errors.New("select_pattern is required")
	}

	re, err := regexp.Compile(env.SelectPattern)
	if err != nil {
		return fmt.Errorf("invalid select_pattern: %w", err)
	}
	env.compiledSelect = re

	if env.Pattern == "" {
		return errors.New("pattern is required")
	}

	re, err = regexp.Compile(env.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if re.SubexpIndex("message") < 0 {
		return errors.New(`pattern must have a named capture group "message"`)
	}
	env.compiledPattern = re

	if env.TimestampLayout == "" {
		env.TimestampLayout = DefaultTimestampLayout
	}

	return nil
}

func validateMetric(m *MetricConfig) error {
	if m.Name == "" {
		return errors.New("name is required")
	}

	if m.Label == "" {
		return errors.New("label is required")
	}

	pattern := m.Pattern
	if pattern == "" {
		pattern = MetricPattern(m.Label)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if re.NumSubexp() < 2 {
		return fmt.Errorf("pattern has %d capture groups, need 2 (iteration, seconds)", re.NumSubexp())
	}

	m.compiledPattern = re
	return nil
}

func validateOutput(out *OutputConfig) error {
	if out.Precision < 0 || out.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, out.Precision)
	}

	if out.Separator == "" {
		return errors.New("separator must not be empty")
	}

	return nil
}
