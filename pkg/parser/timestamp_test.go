package parser

import (
	"testing"
	"time"
)

func TestTimestampParser_Parse(t *testing.T) {
	p := NewTimestampParser("2006-01-02 15:04:05")

	tests := []struct {
		name  string
		stamp string
		want  time.Time
		ok    bool
	}{
		{"logger stamp", "2020-11-02 10:30:00", time.Date(2020, 11, 2, 10, 30, 0, 0, time.UTC), true},
		{"padded", " 2020-11-02 10:30:00 ", time.Date(2020, 11, 2, 10, 30, 0, 0, time.UTC), true},
		{"free text", "rank zero", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Parse(tt.stamp)
			if ok != tt.ok {
				t.Fatalf("Parse() ok = %v, want %v", ok, tt.ok)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimestampParser_NoLayout(t *testing.T) {
	if _, ok := NewTimestampParser("").Parse("2020-11-02 10:30:00"); ok {
		t.Error("Parse() with empty layout should not parse")
	}

	var p *TimestampParser
	if _, ok := p.Parse("2020-11-02 10:30:00"); ok {
		t.Error("Parse() on nil parser should not parse")
	}
}

func TestTimestampParser_UnixLayouts(t *testing.T) {
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	got, ok := NewTimestampParser(LayoutUnixSeconds).Parse("1705314600")
	if !ok || !got.Equal(want) {
		t.Errorf("UNIX_SECONDS Parse() = %v, %v; want %v", got, ok, want)
	}

	got, ok = NewTimestampParser(LayoutUnixMillis).Parse("1705314600250")
	if !ok || !got.Equal(want.Add(250*time.Millisecond)) {
		t.Errorf("UNIX_MILLIS Parse() = %v, %v", got, ok)
	}

	for _, stamp := range []string{"-5", "99999999999", "10:30:00"} {
		if _, ok := NewTimestampParser(LayoutUnixSeconds).Parse(stamp); ok {
			t.Errorf("UNIX_SECONDS Parse(%q) should not parse", stamp)
		}
	}
}
