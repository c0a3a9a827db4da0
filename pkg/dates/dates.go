// Package dates parses the date formats the ERP API and legacy imports
// actually produce: ISO timestamps, ISO dates, and brazilian day-first
// dates with or without time and with 2- or 4-digit years.
//
// Parse tries an ordered list of format matchers and reports "no match"
// as a first-class outcome instead of an error, so callers can treat
// unparseable values as displayable raw text.
package dates

import "time"

// layouts are tried in order; the first match wins. More specific layouts
// (with time components) come before their date-only counterparts.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2/1/06",
}

// Parse attempts to parse value against the known layouts.
// The boolean result is false when no layout matches.
func Parse(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseIn is Parse with an explicit location for layouts that carry no
// zone information.
func ParseIn(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Display renders a raw API date value as brazilian DD/MM/YYYY.
// Unparseable values are returned unchanged.
func Display(value string) string {
	t, ok := Parse(value)
	if !ok {
		return value
	}
	return t.Format("02/01/2006")
}
