package commands

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDiagnoseCommand(t *testing.T) {
	cmd := NewDiagnoseCommand()

	if cmd.Use != "diagnose [infile]" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	for _, flag := range []string{"config", "verbose", "color", "max-examples"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestRunDiagnose_Clean(t *testing.T) {
	out, err := execute(t, NewDiagnoseCommand(), "", "-v", scenarioLog(t))
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}

	for _, want := range []string{"[PASS] Envelope Lines", "[PASS] Metric: computation", "Slowest: iteration 0", "Input looks good!"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDiagnose_Malformed(t *testing.T) {
	path := writeLog(t, t.TempDir(), "bad.log",
		logLine(0, "Computation time for iteration 0: 1.5 seconds"),
		"[0;31m broken",
		logLine(0, "Communication time for iteration 0: fast"),
		logLine(1, "Communication time for iteration 1: 0.5 seconds"),
	)

	out, err := execute(t, NewDiagnoseCommand(), "", path)
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}

	for _, want := range []string{
		"[FAIL] Envelope Lines",
		"line 2: [0;31m broken",
		"[FAIL] Metric: communication",
		"line 3: Communication time for iteration 0: fast",
		"2 errors",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDiagnose_Warnings(t *testing.T) {
	path := writeLog(t, t.TempDir(), "plain.log", "nothing colored here")

	out, err := execute(t, NewDiagnoseCommand(), "", path)
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
	if !strings.Contains(out, "[WARN] Envelope Lines") {
		t.Errorf("Output missing envelope warning:\n%s", out)
	}
}

func TestRunDiagnose_MissingInput(t *testing.T) {
	out, err := execute(t, NewDiagnoseCommand(), "", filepath.Join(t.TempDir(), "missing.log"))
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
	if !strings.Contains(out, "File does not exist") {
		t.Errorf("Output missing file error:\n%s", out)
	}
}

func TestCheckConfig_BadFile(t *testing.T) {
	_, result := checkConfig(context.Background(), "/nonexistent/config.yaml")
	if result.Status != "error" {
		t.Errorf("Expected error status, got %s", result.Status)
	}
}

func TestPrintDiagnostics_Color(t *testing.T) {
	var buf strings.Builder
	errs := printDiagnostics(&buf, []DiagnosticResult{
		{Check: "A", Status: "ok", Message: "fine"},
		{Check: "B", Status: "error", Message: "bad"},
	}, &DiagnoseOptions{Color: true})

	if errs != 1 {
		t.Errorf("errors = %d, want 1", errs)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Error("Expected ANSI codes with color enabled")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate(strings.Repeat("x", 20), 10); got != "xxxxxxx..." {
		t.Errorf("truncate() = %q", got)
	}
}

func TestRunDiagnose_Timestamps(t *testing.T) {
	out, err := execute(t, NewDiagnoseCommand(), "", "-v", scenarioLog(t))
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	for _, want := range []string{"[PASS] Timestamps", "Span: 2020-11-02T10:00:00Z to 2020-11-02T10:00:01Z (1s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDiagnose_SuggestsLayout(t *testing.T) {
	path := writeLog(t, t.TempDir(), "iso.log",
		"[0;32m[2020-11-02T10:00:00Z] 00 ~  Computation time for iteration 0: 1.5 seconds\x1b[0m",
		"[0;33m[2020-11-02T10:00:01Z] 01 ~  Computation time for iteration 0: 2.5 seconds\x1b[0m",
	)

	out, err := execute(t, NewDiagnoseCommand(), "", path)
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
	for _, want := range []string{
		"[WARN] Timestamps",
		"2 of 2 stamp(s) do not parse",
		`Set envelope.timestamp_layout: "2006-01-02T15:04:05Z"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestTimestampResult_NoDetection(t *testing.T) {
	result := timestampResult("2006-01-02 15:04:05", &stampTally{total: 1, unparsed: []string{"step four"}})
	if result.Status != "warning" {
		t.Errorf("Status = %s, want warning", result.Status)
	}
	if len(result.Suggests) != 1 || !strings.Contains(result.Suggests[0], "Go time layout") {
		t.Errorf("Suggests = %v", result.Suggests)
	}
}
