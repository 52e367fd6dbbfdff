package util

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts covers the formats pages and search engines actually
// emit: ISO 8601 with and without time, the RFC mail/HTTP variants,
// and the common human-readable forms.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"02.01.2006",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

var yearRe = regexp.MustCompile(`\b(20[0-9]{2})\b`)

// ParseDate parses the date strings found in page metadata and search
// results. The second return is false when nothing matched.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeMonth reduces a date string to YYYY-MM. Falls back to a
// bare year with January assumed, then to the input unchanged.
func NormalizeMonth(s string) string {
	if s == "" {
		return ""
	}
	if t, ok := ParseDate(s); ok {
		return t.Format("2006-01")
	}
	if m := yearRe.FindString(s); m != "" {
		return m + "-01"
	}
	return s
}

// MonthsBetween returns the calendar-month distance from then to now.
func MonthsBetween(now, then time.Time) int {
	return (now.Year()-then.Year())*12 + int(now.Month()) - int(then.Month())
}
