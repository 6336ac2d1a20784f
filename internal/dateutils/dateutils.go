// Package dateutils provides date parsing for statement cells. Nomad
// statements print dates day-first, so ambiguous numeric dates resolve as
// day/month/year.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the tap
const (
	DateLayoutISO    = "2006-01-02"
	DateLayoutSlash  = "02/01/2006"
	DateLayoutDotted = "02.01.2006"
	DateLayoutDashed = "02-01-2006"
)

// DayFirstFormats is the ordered list of formats tried when parsing a
// statement date. Numeric formats are day-first; the unpadded variants
// also accept single-digit days and months.
var DayFirstFormats = []string{
	DateLayoutSlash,
	"2/1/2006",
	DateLayoutDotted,
	"2.1.2006",
	DateLayoutDashed,
	"2-1-2006",
	DateLayoutISO,
	time.RFC3339,
	"02/01/2006 15:04:05",
	"2 January 2006",
	"02 Jan 2006",
}

var spaceRe = regexp.MustCompile(`\s+`)

// ParseDayFirst parses a statement date string, trying each day-first
// format in order. An empty or unparseable string is an error: callers
// never receive a zero date silently.
func ParseDayFirst(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range DayFirstFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return spaceRe.ReplaceAllString(dateStr, " ")
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
