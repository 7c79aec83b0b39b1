package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default values for configuration.
const (
	// DefaultSelectPattern keeps lines that start with a foreground color code in the 30-39 range.
	DefaultSelectPattern = `^\[0;3\d`

	// DefaultEnvelopePattern unwraps `[0;3Xm[stamp] rank ~ message<ESC>[0m`.
	DefaultEnvelopePattern = `^\[0;3(?P<color>\d)m\[(?P<stamp>.*)\] (?P<rank>\d*) ~ *(?P<message>.*)\[0m$`

	DefaultTimestampLayout = "2006-01-02 15:04:05"
	DefaultPrecision       = 6
	DefaultSeparator       = ","

	// MaxPrecision bounds the number of fractional digits printed.
	MaxPrecision = 17
)

// Default metric categories, in output order.
const (
	MetricComputation   = "computation"
	MetricCommunication = "communication"

	LabelComputation   = "Computation time for iteration"
	LabelCommunication = "Communication time for iteration"
)

// Environment variable names.
const (
	EnvPrecision       = "ITERLOG_PRECISION"
	EnvEnvelopePattern = "ITERLOG_ENVELOPE_PATTERN"
)

// DefaultConfig returns a configuration matching the logger's built-in format.
func DefaultConfig() *Config {
	return &Config{
		Envelope: EnvelopeConfig{
			SelectPattern:   DefaultSelectPattern,
			Pattern:         DefaultEnvelopePattern,
			TimestampLayout: DefaultTimestampLayout,
		},
		Metrics: []MetricConfig{
			{Name: MetricComputation, Label: LabelComputation},
			{Name: MetricCommunication, Label: LabelCommunication},
		},
		Output: OutputConfig{
			Precision: DefaultPrecision,
			Separator: DefaultSeparator,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() error {
	if v := os.Getenv(EnvPrecision); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		c.Output.Precision = p
	}

	if pattern := os.Getenv(EnvEnvelopePattern); pattern != "" {
		c.Envelope.Pattern = pattern
	}

	return nil
}
