package utils

import (
	"fmt"
	"time"
)

// ParseDayStart parses a YYYY-MM-DD string to 00:00:00 UTC of that day.
func ParseDayStart(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseDayEnd parses a YYYY-MM-DD string to 23:59:59.999 UTC of that day, so
// range filters include the whole calendar day.
func ParseDayEnd(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, time.UTC), nil
}

// FormatReportDate renders a date the way the hours report exposes it.
func FormatReportDate(t time.Time) string {
	return t.Format("02/01/2006")
}
