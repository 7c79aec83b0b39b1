package analyzer

import (
	"context"

	"github.com/ccollicutt/iterlog/pkg/parser"
)

// Engine reduces the lines of one metric category into a series.
type Engine interface {
	// Name returns the metric name for reporting.
	Name() string

	// Process handles a single envelope line, updating internal state.
	// It reports whether the line carried this engine's metric; a line
	// that carries the label but does not parse is a fatal error.
	Process(ctx context.Context, line *parser.Line) (bool, error)

	// Finalize returns the reduced series.
	// Called after all lines have been processed.
	Finalize(ctx context.Context) (*Series, error)

	// Reset clears internal state for reuse.
	Reset()
}
