package detector

import (
	"regexp"

	"github.com/ccollicutt/iterlog/pkg/parser"
)

// StampFormat is a known envelope stamp format.
type StampFormat struct {
	Name       string         // Human-readable name
	Pattern    *regexp.Regexp // Compiled from PatternStr by DefaultFormats
	PatternStr string         // Whole-stamp pattern
	Layout     string         // Value for envelope.timestamp_layout
	Examples   []string
	Ambiguous  bool // MM/DD vs DD/MM
}

// DefaultFormats returns the stamp formats to try, most specific first.
func DefaultFormats() []*StampFormat {
	formats := []*StampFormat{
		{
			Name:       "Date and time with microseconds",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{6}$`,
			Layout:     "2006-01-02 15:04:05.000000",
			Examples:   []string{"2020-11-02 10:30:00.123456"},
		},
		{
			Name:       "Date and time with milliseconds",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}$`,
			Layout:     "2006-01-02 15:04:05.000",
			Examples:   []string{"2020-11-02 10:30:00.123"},
		},
		{
			Name:       "Date and time",
			PatternStr: `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`,
			Layout:     "2006-01-02 15:04:05",
			Examples:   []string{"2020-11-02 10:30:00"},
		},
		{
			Name:       "ISO 8601 with timezone",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[+-]\d{2}:\d{2}$`,
			Layout:     "2006-01-02T15:04:05-07:00",
			Examples:   []string{"2020-11-02T10:30:00+01:00"},
		},
		{
			Name:       "ISO 8601 with milliseconds and Z",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`,
			Layout:     "2006-01-02T15:04:05.000Z",
			Examples:   []string{"2020-11-02T10:30:00.123Z"},
		},
		{
			Name:       "ISO 8601 with Z (UTC)",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`,
			Layout:     "2006-01-02T15:04:05Z",
			Examples:   []string{"2020-11-02T10:30:00Z"},
		},
		{
			Name:       "ISO 8601",
			PatternStr: `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`,
			Layout:     "2006-01-02T15:04:05",
			Examples:   []string{"2020-11-02T10:30:00"},
		},
		{
			Name:       "Slash date",
			PatternStr: `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}:\d{2}$`,
			Layout:     "01/02/2006 15:04:05",
			Examples:   []string{"11/02/2020 10:30:00"},
			Ambiguous:  true,
		},
		{
			Name:       "Time with milliseconds",
			PatternStr: `^\d{2}:\d{2}:\d{2}\.\d{3}$`,
			Layout:     "15:04:05.000",
			Examples:   []string{"10:30:00.123"},
		},
		{
			Name:       "Time",
			PatternStr: `^\d{2}:\d{2}:\d{2}$`,
			Layout:     "15:04:05",
			Examples:   []string{"10:30:00"},
		},
		{
			Name:       "Unix milliseconds",
			PatternStr: `^\d{13}$`,
			Layout:     parser.LayoutUnixMillis,
			Examples:   []string{"1604313000123"},
		},
		{
			Name:       "Unix seconds",
			PatternStr: `^\d{10}$`,
			Layout:     parser.LayoutUnixSeconds,
			Examples:   []string{"1604313000"},
		},
	}

	for _, f := range formats {
		f.Pattern = regexp.MustCompile(f.PatternStr)
	}

	return formats
}
