// Package detector guesses the time layout of envelope stamps.
package detector

import (
	"sort"
	"strings"
	"time"

	"github.com/ccollicutt/iterlog/pkg/parser"
)

// DetectionResult holds the outcome of checking stamps against known formats.
type DetectionResult struct {
	Matches       []FormatMatch // Sorted by confidence descending
	SampledStamps int
	ParsedStamps  int    // Stamps parsed by the best match
	AmbiguityNote string // Set when the best match has date ordering ambiguity
}

// FormatMatch is one format that parsed at least one stamp.
type FormatMatch struct {
	Format     *StampFormat
	Confidence float64 // Share of sampled stamps parsed, 0.0 to 1.0
	MatchCount int
	Sample     string
	ParsedTime time.Time
}

// Detector checks stamps against a list of formats.
type Detector struct {
	formats    []*StampFormat
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of stamps to check (default 100).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a Detector with the default formats.
func New(opts ...Option) *Detector {
	d := &Detector{
		formats:    DefaultFormats(),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect checks up to the sample size of non-empty stamps.
func (d *Detector) Detect(stamps []string) *DetectionResult {
	sample := make([]string, 0, d.sampleSize)
	for _, s := range stamps {
		if len(sample) == d.sampleSize {
			break
		}
		if s = strings.TrimSpace(s); s != "" {
			sample = append(sample, s)
		}
	}

	result := &DetectionResult{SampledStamps: len(sample)}
	if len(sample) == 0 {
		return result
	}

	for _, format := range d.formats {
		ts := parser.NewTimestampParser(format.Layout)
		var match *FormatMatch
		for _, s := range sample {
			if !format.Pattern.MatchString(s) {
				continue
			}
			parsed, ok := ts.Parse(s)
			if !ok {
				continue
			}
			if match == nil {
				match = &FormatMatch{Format: format, Sample: s, ParsedTime: parsed}
			}
			match.MatchCount++
		}
		if match != nil {
			match.Confidence = float64(match.MatchCount) / float64(len(sample))
			result.Matches = append(result.Matches, *match)
		}
	}

	// Equal confidence prefers the longer, more specific pattern.
	sort.SliceStable(result.Matches, func(i, j int) bool {
		a, b := result.Matches[i], result.Matches[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return len(a.Format.PatternStr) > len(b.Format.PatternStr)
	})

	if best := result.BestMatch(); best != nil {
		result.ParsedStamps = best.MatchCount
		if best.Format.Ambiguous {
			result.AmbiguityNote = "This format has date ordering ambiguity (MM/DD vs DD/MM). " +
				"For day-first stamps use layout \"02/01/2006 15:04:05\""
		}
	}

	return result
}

// BestMatch returns the highest confidence match, or nil if none found.
func (r *DetectionResult) BestMatch() *FormatMatch {
	if len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}

// HasMatch returns true if at least one format matched.
func (r *DetectionResult) HasMatch() bool {
	return len(r.Matches) > 0
}
