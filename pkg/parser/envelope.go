package parser

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

// Unwrapper selects envelope lines and strips the wrapper from them.
type Unwrapper struct {
	selector *regexp.Regexp
	pattern  *regexp.Regexp
	stamps   *TimestampParser

	// Subexpression indexes; -1 when the pattern lacks the group.
	message int
	color   int
	stamp   int
	rank    int
}

// NewUnwrapper creates an Unwrapper. The pattern must have a named group "message".
func NewUnwrapper(selector, pattern *regexp.Regexp, layout string) *Unwrapper {
	return &Unwrapper{
		selector: selector,
		pattern:  pattern,
		stamps:   NewTimestampParser(layout),
		message:  pattern.SubexpIndex("message"),
		color:    pattern.SubexpIndex("color"),
		stamp:    pattern.SubexpIndex("stamp"),
		rank:     pattern.SubexpIndex("rank"),
	}
}

// Selects reports whether raw is an envelope line.
func (u *Unwrapper) Selects(raw string) bool {
	return u.selector.MatchString(raw)
}

// Unwrap takes a selected line apart. It returns false when the line does
// not match the envelope pattern in full.
func (u *Unwrapper) Unwrap(num int, raw string) (*Line, bool) {
	m := u.pattern.FindStringSubmatch(raw)
	if m == nil || u.message < 0 {
		return nil, false
	}

	line := &Line{
		Num:     num,
		Raw:     raw,
		Color:   -1,
		Rank:    -1,
		Message: dropLast(m[u.message]),
	}

	if u.color >= 0 {
		line.Color = atoiOr(m[u.color], -1)
	}
	if u.rank >= 0 {
		line.Rank = atoiOr(m[u.rank], -1)
	}
	if u.stamp >= 0 {
		line.Stamp = m[u.stamp]
		if ts, ok := u.stamps.Parse(line.Stamp); ok {
			line.Timestamp = ts
		}
	}

	return line, true
}

// dropLast removes the final character the logger leaves before the color reset.
func dropLast(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
