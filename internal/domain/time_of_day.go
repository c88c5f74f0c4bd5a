package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the ISO-8601 calendar date layout used for storage and backups.
	DateLayout = "2006-01-02"
	// ClockLayout is the full time-of-day layout used for storage and backups.
	ClockLayout = "15:04:05"
	// ShortClockLayout is the HH:MM layout used by forms and reports.
	ShortClockLayout = "15:04"
)

// TimeOfDay is a naive wall-clock time expressed as the offset from midnight.
// Valid values lie in [0, 24h) and carry no timezone.
type TimeOfDay time.Duration

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	d := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	return TimeOfDay(d), nil
}

// MustTimeOfDay is like NewTimeOfDay but panics on invalid input.
func MustTimeOfDay(hour, minute, second int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute, second)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	layout := ClockLayout
	if strings.Count(s, ":") == 1 {
		layout = ShortClockLayout
	}
	parsed, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return NewTimeOfDay(parsed.Hour(), parsed.Minute(), parsed.Second())
}

// Duration returns the offset from midnight.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

// On combines the time of day with the calendar date of d.
func (t TimeOfDay) On(d time.Time) time.Time {
	return DateOnly(d).Add(t.Duration())
}

// Format renders the time of day with a reference-time layout such as "15:04".
func (t TimeOfDay) Format(layout string) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(t.Duration()).Format(layout)
}

// String returns the HH:MM:SS form.
func (t TimeOfDay) String() string {
	return t.Format(ClockLayout)
}

// DateOnly strips the clock and location from t, keeping its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
