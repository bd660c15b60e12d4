package util

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order. RFC3339 already accepts fractional
// seconds on input; the zone-less forms cover hook writers that omit the
// offset and are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO-8601 timestamp and normalizes it to UTC
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// ParseOptionalTimestamp parses a timestamp that may be absent.
// ok is false when the value is nil or does not parse.
func ParseOptionalTimestamp(value *string) (time.Time, bool) {
	if value == nil {
		return time.Time{}, false
	}
	t, err := ParseTimestamp(*value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatTimestamp renders t in canonical round-trip form: RFC3339 in UTC,
// with fractional seconds only when present.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// WithinClosed reports whether start <= t <= end
func WithinClosed(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// WithinOpen reports whether start < t < end
func WithinOpen(t, start, end time.Time) bool {
	return t.After(start) && t.Before(end)
}
