package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// StdinName is the input name used for standard input.
const StdinName = "<stdin>"

// IsStdin reports whether path refers to standard input.
func IsStdin(path string) bool {
	return path == "" || path == "-"
}

// Open opens an input for reading. An empty path or "-" reads stdin.
// Files ending in .gz, .zst or .sz are decompressed on the fly.
func Open(path string, stdin io.Reader) (io.ReadCloser, error) {
	if IsStdin(path) {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening input %s: %w", path, err)
	}

	rc, err := Decompress(path, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return rc, nil
}

// Decompress wraps r in a decoder chosen by the extension of name.
// Closing the result also closes r when r is an io.Closer.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	var dec io.ReadCloser

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("reading gzip header of %s: %w", name, err)
		}
		dec = zr
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader for %s: %w", name, err)
		}
		dec = zr.IOReadCloser()
	case ".sz":
		dec = io.NopCloser(snappy.NewReader(r))
	default:
		if rc, ok := r.(io.ReadCloser); ok {
			return rc, nil
		}
		return io.NopCloser(r), nil
	}

	return &stackedCloser{Reader: dec, closers: []io.Closer{dec, asCloser(r)}}, nil
}

// ReadText reads the whole input as one blob. Carriage returns are kept:
// only \n ends a line, and a \r before the reset code is the character the
// unwrapper drops.
func ReadText(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return string(data), nil
}

// ReadFile opens path (or stdin) and returns its text.
func ReadFile(ctx context.Context, path string, stdin io.Reader) (string, error) {
	rc, err := Open(path, stdin)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	text, err := ReadText(ctx, rc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", DisplayName(path), err)
	}
	return text, nil
}

// DisplayName returns the name used for path in reports.
func DisplayName(path string) string {
	if IsStdin(path) {
		return StdinName
	}
	return path
}

type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func asCloser(r io.Reader) io.Closer {
	if c, ok := r.(io.Closer); ok {
		return c
	}
	return nopCloser{}
}
