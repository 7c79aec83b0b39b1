package parser

import (
	"strconv"
	"strings"
	"time"
)

// Layouts for stamps that are epoch counts rather than dates.
const (
	LayoutUnixSeconds = "UNIX_SECONDS"
	LayoutUnixMillis  = "UNIX_MILLIS"
)

// maxUnixSeconds bounds epoch stamps to 1970-2100.
const maxUnixSeconds = 4102444800

// TimestampParser turns envelope stamps into times.
type TimestampParser struct {
	layout string
}

// NewTimestampParser creates a parser for a Go time layout or one of the
// Unix layouts.
func NewTimestampParser(layout string) *TimestampParser {
	return &TimestampParser{layout: layout}
}

// Parse returns the parsed stamp and whether it parsed.
// Stamps are free text in the envelope, so a failure is not an error.
func (p *TimestampParser) Parse(stamp string) (time.Time, bool) {
	if p == nil || p.layout == "" {
		return time.Time{}, false
	}
	stamp = strings.TrimSpace(stamp)

	switch p.layout {
	case LayoutUnixSeconds:
		secs, err := strconv.ParseInt(stamp, 10, 64)
		if err != nil || secs < 0 || secs > maxUnixSeconds {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true

	case LayoutUnixMillis:
		millis, err := strconv.ParseInt(stamp, 10, 64)
		if err != nil || millis < 0 || millis/1000 > maxUnixSeconds {
			return time.Time{}, false
		}
		return time.UnixMilli(millis).UTC(), true
	}

	ts, err := time.Parse(p.layout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
