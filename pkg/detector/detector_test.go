package detector

import (
	"testing"
	"time"

	"github.com/ccollicutt/iterlog/pkg/parser"
)

func TestDetector_Detect_LoggerStamps(t *testing.T) {
	stamps := []string{
		"2020-11-02 10:30:00",
		"2020-11-02 10:30:01",
		"2020-11-02 10:30:05",
	}

	result := New().Detect(stamps)
	if !result.HasMatch() {
		t.Fatal("Expected to detect a format")
	}

	best := result.BestMatch()
	if best.Format.Layout != "2006-01-02 15:04:05" {
		t.Errorf("Layout = %q, want logger layout", best.Format.Layout)
	}
	if best.Confidence != 1.0 {
		t.Errorf("Expected 100%% confidence, got %.1f%%", best.Confidence*100)
	}
	if !best.ParsedTime.Equal(time.Date(2020, 11, 2, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("ParsedTime = %v", best.ParsedTime)
	}
	if result.ParsedStamps != 3 || result.SampledStamps != 3 {
		t.Errorf("parsed %d of %d, want 3 of 3", result.ParsedStamps, result.SampledStamps)
	}
}

func TestDetector_Detect_Formats(t *testing.T) {
	tests := []struct {
		stamp  string
		layout string
	}{
		{"2020-11-02 10:30:00.123", "2006-01-02 15:04:05.000"},
		{"2020-11-02 10:30:00.123456", "2006-01-02 15:04:05.000000"},
		{"2020-11-02T10:30:00Z", "2006-01-02T15:04:05Z"},
		{"2020-11-02T10:30:00+01:00", "2006-01-02T15:04:05-07:00"},
		{"10:30:00", "15:04:05"},
		{"1604313000", parser.LayoutUnixSeconds},
		{"1604313000123", parser.LayoutUnixMillis},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.stamp, func(t *testing.T) {
			best := d.Detect([]string{tt.stamp}).BestMatch()
			if best == nil {
				t.Fatal("Expected a match")
			}
			if best.Format.Layout != tt.layout {
				t.Errorf("Layout = %q, want %q", best.Format.Layout, tt.layout)
			}
		})
	}
}

func TestDetector_Detect_NoMatch(t *testing.T) {
	result := New().Detect([]string{"rank zero", "step 4"})
	if result.HasMatch() {
		t.Errorf("Expected no match, got %s", result.BestMatch().Format.Name)
	}
	if result.SampledStamps != 2 {
		t.Errorf("SampledStamps = %d, want 2", result.SampledStamps)
	}
}

func TestDetector_Detect_Empty(t *testing.T) {
	result := New().Detect([]string{"", "  "})
	if result.HasMatch() || result.SampledStamps != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
	if result.BestMatch() != nil {
		t.Error("BestMatch() should be nil")
	}
}

func TestDetector_Detect_Mixed(t *testing.T) {
	stamps := []string{
		"10:30:00",
		"10:30:01",
		"2020-11-02 10:30:02",
		"10:30:03",
	}

	result := New().Detect(stamps)
	if len(result.Matches) != 2 {
		t.Fatalf("Matches = %d, want 2", len(result.Matches))
	}
	if best := result.BestMatch(); best.Format.Layout != "15:04:05" || best.Confidence != 0.75 {
		t.Errorf("best = %s at %.2f", best.Format.Layout, best.Confidence)
	}
}

func TestDetector_Detect_Ambiguous(t *testing.T) {
	result := New().Detect([]string{"11/02/2020 10:30:00"})
	if !result.HasMatch() {
		t.Fatal("Expected a match")
	}
	if result.AmbiguityNote == "" {
		t.Error("Expected ambiguity note for slash dates")
	}
}

func TestDetector_WithSampleSize(t *testing.T) {
	stamps := []string{"10:30:00", "10:30:01", "10:30:02"}

	if got := New(WithSampleSize(2)).Detect(stamps).SampledStamps; got != 2 {
		t.Errorf("SampledStamps = %d, want 2", got)
	}
	if got := New(WithSampleSize(-1)).Detect(stamps).SampledStamps; got != 3 {
		t.Errorf("invalid size: SampledStamps = %d, want 3", got)
	}
}

func TestDefaultFormats(t *testing.T) {
	for _, f := range DefaultFormats() {
		if f.Pattern == nil {
			t.Errorf("%s: pattern not compiled", f.Name)
			continue
		}
		for _, ex := range f.Examples {
			if !f.Pattern.MatchString(ex) {
				t.Errorf("%s: example %q does not match", f.Name, ex)
			}
			if _, ok := parser.NewTimestampParser(f.Layout).Parse(ex); !ok {
				t.Errorf("%s: example %q does not parse with %q", f.Name, ex, f.Layout)
			}
		}
	}
}
