package parser

import (
	"context"
	"io"
	"strings"
)

// TextSource implements LineSource over a log that has been read into memory.
type TextSource struct {
	name      string
	lines     []string
	unwrapper *Unwrapper

	next     int
	selected int
}

// NewTextSource splits text on newlines and yields its envelope lines in order.
func NewTextSource(name, text string, u *Unwrapper) *TextSource {
	return &TextSource{
		name:      name,
		lines:     strings.Split(text, "\n"),
		unwrapper: u,
	}
}

// Next returns the next envelope line.
// Returns io.EOF when the text is exhausted.
func (s *TextSource) Next(ctx context.Context) (*Line, error) {
	for s.next < len(s.lines) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		raw := s.lines[s.next]
		s.next++

		if !s.unwrapper.Selects(raw) {
			continue
		}
		s.selected++

		line, ok := s.unwrapper.Unwrap(s.next, raw)
		if !ok {
			return nil, &ParseError{Source: s.name, Line: s.next, Text: raw}
		}
		return line, nil
	}

	return nil, io.EOF
}

// Name returns the input name.
func (s *TextSource) Name() string {
	return s.name
}

// LinesRead returns how many raw lines have been consumed.
func (s *TextSource) LinesRead() int {
	return s.next
}

// LinesSelected returns how many lines passed the selector.
func (s *TextSource) LinesSelected() int {
	return s.selected
}

// Close releases resources.
func (s *TextSource) Close() error {
	s.lines = nil
	return nil
}
