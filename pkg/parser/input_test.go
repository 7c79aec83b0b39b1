package parser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const sampleLog = "[0;34m[2020-11-02 10:00:00] 00 ~  Computation time for iteration 0: 1.5 seconds\x1b[0m\n"

func TestReadFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := ReadFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if text != sampleLog {
		t.Errorf("ReadFile() = %q, want %q", text, sampleLog)
	}
}

func TestReadFile_Stdin(t *testing.T) {
	for _, path := range []string{"", "-"} {
		text, err := ReadFile(context.Background(), path, strings.NewReader(sampleLog))
		if err != nil {
			t.Fatalf("ReadFile(%q) error = %v", path, err)
		}
		if text != sampleLog {
			t.Errorf("ReadFile(%q) = %q", path, text)
		}
	}
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(context.Background(), "/nonexistent/run.log", nil)
	if err == nil {
		t.Error("ReadFile() expected error for missing file")
	}
}

func TestReadFile_Compressed(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		compress func(t *testing.T, data []byte) []byte
	}{
		{"run.log.gz", func(t *testing.T, data []byte) []byte {
			var buf bytes.Buffer
			w := gzip.NewWriter(&buf)
			if _, err := w.Write(data); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			return buf.Bytes()
		}},
		{"run.log.zst", func(t *testing.T, data []byte) []byte {
			enc, err := zstd.NewWriter(nil)
			if err != nil {
				t.Fatal(err)
			}
			defer enc.Close()
			return enc.EncodeAll(data, nil)
		}},
		{"run.log.sz", func(t *testing.T, data []byte) []byte {
			var buf bytes.Buffer
			w := snappy.NewBufferedWriter(&buf)
			if _, err := w.Write(data); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}
			return buf.Bytes()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, tt.compress(t, []byte(sampleLog)), 0644); err != nil {
				t.Fatal(err)
			}

			text, err := ReadFile(context.Background(), path, nil)
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if text != sampleLog {
				t.Errorf("ReadFile() = %q, want %q", text, sampleLog)
			}
		})
	}
}

func TestReadFile_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log.gz")
	if err := os.WriteFile(path, []byte("not gzip"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(context.Background(), path, nil); err == nil {
		t.Error("ReadFile() expected error for corrupt gzip")
	}
}

func TestReadText_KeepsCarriageReturns(t *testing.T) {
	in := "a\r\nb\rc\n"
	text, err := ReadText(context.Background(), strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}
	if text != in {
		t.Errorf("ReadText() = %q, want %q", text, in)
	}
}

func TestReadText_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ReadText(ctx, strings.NewReader("x")); err != context.Canceled {
		t.Errorf("ReadText() error = %v, want context.Canceled", err)
	}
}

func TestDisplayName(t *testing.T) {
	if DisplayName("-") != StdinName || DisplayName("") != StdinName {
		t.Error("DisplayName() should name stdin")
	}
	if DisplayName("a.log") != "a.log" {
		t.Errorf("DisplayName(a.log) = %q", DisplayName("a.log"))
	}
}
