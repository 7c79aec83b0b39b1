package parser

import "context"

// LineSource provides an iterator over envelope lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next envelope line.
	// Returns io.EOF when no more lines are available.
	// Lines the selector rejects are skipped; selected lines that do not
	// unwrap end iteration with a *ParseError.
	Next(ctx context.Context) (*Line, error)

	// Name identifies the input in errors and reports.
	Name() string

	// Close releases any resources held by the source.
	Close() error
}
