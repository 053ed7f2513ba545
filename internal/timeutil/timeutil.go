// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	secondsInAMinute = 60
	secondsInAnHour  = 3600
	msInAnHour       = 3_600_000
)

// DayLayout is the layout of the local calendar day keys used to bucket
// sessions.
const DayLayout = "2006-01-02"

// ErrInvalidInterval is returned when a duration is computed over an
// interval whose end precedes its start.
var ErrInvalidInterval = errors.New("invalid interval: end is before start")

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
// Halves are rounded away from zero.
func Round(t float64) int {
	return int(math.Round(t))
}

// RoundTo2 rounds a value to two decimal places, with halves rounded away from
// zero.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ElapsedSeconds returns the whole number of seconds between start and end.
func ElapsedSeconds(start, end time.Time) (int64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf(
			"%w: %s < %s",
			ErrInvalidInterval,
			end.Format(time.RFC3339),
			start.Format(time.RFC3339),
		)
	}

	return int64(end.Sub(start) / time.Second), nil
}

// FormatClock renders seconds as HH:MM:SS. Hours are not bounded to 24.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	h := seconds / secondsInAnHour
	m := (seconds % secondsInAnHour) / secondsInAMinute
	s := seconds % secondsInAMinute

	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHuman renders seconds compactly, e.g. 45s, 12m or 3h 20m.
func FormatHuman(seconds int64) string {
	if seconds < 0 {
		return "-" + FormatHuman(-seconds)
	}

	if seconds < secondsInAMinute {
		return fmt.Sprintf("%ds", seconds)
	}

	hours := seconds / secondsInAnHour
	minutes := (seconds % secondsInAnHour) / secondsInAMinute

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}

	return fmt.Sprintf("%dm", minutes)
}

// ToHours converts milliseconds to hours rounded to two decimal places.
func ToHours(ms int64) float64 {
	return math.Round(float64(ms)/(msInAnHour/100)) / 100
}

// SecondsToHours converts seconds to hours rounded to two decimal places.
func SecondsToHours(secs int64) float64 {
	return ToHours(secs * 1000)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		int(time.Second-time.Nanosecond),
		t.Location(),
	)
}

// StartOfWeek returns the first instant of the week containing t.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7

	return RoundToStart(t.AddDate(0, 0, -offset))
}

// EndOfWeek returns the last instant of the week containing t.
func EndOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return RoundToEnd(StartOfWeek(t, weekStart).AddDate(0, 0, 6))
}

// StartOfMonth returns the first instant of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of the month containing t.
func EndOfMonth(t time.Time) time.Time {
	return RoundToEnd(StartOfMonth(t).AddDate(0, 1, -1))
}

// DaysIn returns the number of days in the month for the specified time.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayKey returns the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}

	return t.Format(DayLayout)
}

// ParseWeekday parses an English weekday name such as "monday".
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			return d, nil
		}
	}

	return time.Sunday, fmt.Errorf("unknown weekday: %q", s)
}
