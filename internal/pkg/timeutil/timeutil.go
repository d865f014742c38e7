package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a wall-clock string is not "HH:mm" or "HH:mm:ss".
var ErrInvalidFormat = errors.New("invalid time format, use HH:mm")

// TimeStringToMinutes converts "HH:mm" (any trailing ":ss" is ignored) into minutes since midnight.
func TimeStringToMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, ":") {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidFormat)
	}

	return hour*60 + minute, nil
}

// FormatTimeString renders the wall-clock part of t as "HH:mm:ss" in t's location.
func FormatTimeString(t time.Time) string {
	return t.Format("15:04:05")
}

// MinutesOfDay returns hour*60+minute of t in t's location, ignoring seconds.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DateOnly truncates t to midnight of its calendar day in t's location.
// time.Truncate is not used because it works on absolute time, not local days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Combine places a "HH:mm" or "HH:mm:ss" wall-clock string on the calendar day of date.
func Combine(date time.Time, clock string) (time.Time, error) {
	layout := "15:04:05"
	if strings.Count(clock, ":") == 1 {
		layout = "15:04"
	}

	parsed, err := time.Parse(layout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", clock, ErrInvalidFormat)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
		date.Location(),
	), nil
}
