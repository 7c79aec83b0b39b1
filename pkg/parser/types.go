// Package parser reads colorized logger output and unwraps the message of each envelope line.
package parser

import (
	"errors"
	"fmt"
	"time"
)

// Line is one envelope line with its wrapper taken apart.
type Line struct {
	// Num is the 1-based line number in the input.
	Num int

	// Raw is the original line content.
	Raw string

	// Color is the foreground color digit (0-9), or -1 if the pattern has no color group.
	Color int

	// Stamp is the bracketed text before the rank.
	Stamp string

	// Timestamp is Stamp parsed with the configured layout; zero when it does not parse.
	Timestamp time.Time

	// Rank is the process id printed after the stamp, or -1 when absent.
	Rank int

	// Message is the unwrapped log message with its trailing byte removed.
	Message string
}

// ErrMalformedEnvelope is returned when a selected line does not match the envelope pattern.
var ErrMalformedEnvelope = errors.New("malformed envelope line")

// ParseError reports a selected line that could not be unwrapped.
type ParseError struct {
	Source string
	Line   int
	Text   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v: %q", e.Source, e.Line, ErrMalformedEnvelope, e.Text)
}

// Unwrap lets errors.Is match ErrMalformedEnvelope.
func (e *ParseError) Unwrap() error {
	return ErrMalformedEnvelope
}
