package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatDateForDB formats the calendar date of t as YYYY-MM-DD
func FormatDateForDB(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDatePtrForDB formats a *time.Time value as a date, returning nil if the pointer is nil
func FormatDatePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatDateForDB(*t)
}

// ParseDateFromDB parses a YYYY-MM-DD date from the database
func ParseDateFromDB(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatClockForDB formats an offset from midnight as HH:MM:SS
func FormatClockForDB(d time.Duration) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format(clockLayout)
}

// ParseClockFromDB parses HH:MM:SS (optionally with fractional seconds) into an offset from midnight
func ParseClockFromDB(s string) (time.Duration, error) {
	if idx := strings.IndexByte(s, '.'); idx != -1 {
		s = s[:idx]
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
}

// FormatDecimalForDB formats a money or hours value with two fractional digits
func FormatDecimalForDB(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatBoolForDB stores booleans as 0/1
func FormatBoolForDB(b bool) int {
	if b {
		return 1
	}
	return 0
}
