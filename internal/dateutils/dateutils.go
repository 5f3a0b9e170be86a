// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	LayoutISO      = "2006-01-02"
	LayoutDateTime = "2006-01-02 15:04:05"
	LayoutEuropean = "02.01.2006"
	LayoutUS       = "01/02/2006"
)

// CommonFormats is a list of standard formats to try when parsing dates.
// LayoutDateTime comes first because it is the ledger's native format.
var CommonFormats = []string{
	LayoutDateTime,
	LayoutISO,
	LayoutEuropean,
	LayoutUS,
	"02/01/2006",
	"2006/01/02",
	"2-Jan-2006",
	"Jan 2, 2006",
}

var multiSpace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate attempts to parse a date string using multiple common formats.
// Returns the parsed time and the detected format.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseInLocation parses a date string against the common formats,
// interpreting it in the given location.
func ParseInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.ParseInLocation(format, dateStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatDateTime formats a time value with second precision in the ledger's
// native layout.
func FormatDateTime(t time.Time) string {
	return t.Format(LayoutDateTime)
}

// NowIn returns the current time in the named IANA time zone.
func NowIn(tzName string) (time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time zone %q: %w", tzName, err)
	}
	return time.Now().In(loc), nil
}

// SameOrAdjacentDay reports whether two timestamps fall on the same or an
// adjacent calendar date.
func SameOrAdjacentDay(a, b time.Time) bool {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	diff := ad.Sub(bd)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 24*time.Hour
}
