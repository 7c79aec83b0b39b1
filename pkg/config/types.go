// Package config provides configuration loading and validation for iterlog.
package config

import "regexp"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Envelope EnvelopeConfig `yaml:"envelope"`
	Metrics  []MetricConfig `yaml:"metrics"`
	Output   OutputConfig   `yaml:"output"`
}

// EnvelopeConfig describes the colored wrapper around each log message.
type EnvelopeConfig struct {
	// SelectPattern decides which lines are envelope lines at all.
	// Lines it does not match are skipped silently.
	SelectPattern string `yaml:"select_pattern"`

	// Pattern must match every selected line in full. It needs a named
	// group "message"; "color", "stamp" and "rank" are picked up if present.
	Pattern string `yaml:"pattern"`

	// TimestampLayout is the Go time layout for the "stamp" group.
	// Stamps that do not parse are kept as text only.
	TimestampLayout string `yaml:"timestamp_layout"`

	compiledSelect  *regexp.Regexp
	compiledPattern *regexp.Regexp
}

// CompiledSelectPattern returns the compiled line selector.
func (e *EnvelopeConfig) CompiledSelectPattern() *regexp.Regexp {
	return e.compiledSelect
}

// CompiledPattern returns the compiled envelope pattern.
func (e *EnvelopeConfig) CompiledPattern() *regexp.Regexp {
	return e.compiledPattern
}

// MetricConfig defines one timing category extracted from messages.
type MetricConfig struct {
	// Name identifies the series in output (computation, communication).
	Name string `yaml:"name"`

	// Label is the literal message prefix, e.g. "Computation time for iteration".
	Label string `yaml:"label"`

	// Pattern optionally replaces the pattern derived from Label.
	// Capture group 1 is the iteration, group 2 the elapsed seconds.
	Pattern string `yaml:"pattern,omitempty"`

	compiledPattern *regexp.Regexp
}

// CompiledPattern returns the compiled metric pattern.
func (m *MetricConfig) CompiledPattern() *regexp.Regexp {
	return m.compiledPattern
}

// OutputConfig controls number formatting.
type OutputConfig struct {
	// Precision is the number of digits after the decimal point.
	Precision int `yaml:"precision"`

	// Separator joins values on a series line.
	Separator string `yaml:"separator"`
}
