package util

import (
	"strconv"
	"strings"
	"time"
)

// Provider feeds disagree on date formats, so layouts are tried in priority
// order. Date-only layouts resolve in UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// epochFloor gates the unix-seconds fallback so small integers (counts,
// identifiers) are not misread as timestamps.
var epochFloor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Unix()

// ParseTime tries ISO-8601, then explicit provider layouts, then unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > epochFloor {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}
