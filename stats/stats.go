// Package stats derives read-only aggregates from recorded poker sessions
package stats

import (
	"sort"
	"time"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

// Options carries the local-time interpretation shared by every bucketing
// operation.
type Options struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func (o Options) loc() *time.Location {
	if o.Location == nil {
		return time.Local
	}

	return o.Location
}

type (
	// Point is the play time of one local calendar day.
	Point struct {
		Date  string  `json:"date"`
		Hours float64 `json:"hours"`
	}

	// Series is a sparse, date-ascending sequence of daily play hours.
	Series struct {
		Points []Point `json:"points"`
		// Skipped counts sessions in the window that could not be measured
		Skipped int `json:"skipped"`
	}

	// Slice is one non-empty entry of the play/select ratio.
	Slice struct {
		Type  session.PeriodType `json:"type"`
		Hours float64            `json:"hours"`
	}

	// Ratio holds the play and select totals across all sessions.
	Ratio struct {
		Entries     []Slice `json:"entries"`
		PlayHours   float64 `json:"playHours"`
		SelectHours float64 `json:"selectHours"`
		Skipped     int     `json:"skipped"`
	}

	// Metrics are the derived figures of a single session.
	Metrics struct {
		TotalSeconds  int64 `json:"totalSeconds"`
		PlaySeconds   int64 `json:"playSeconds"`
		SelectSeconds int64 `json:"selectSeconds"`
		HandsPerHour  int   `json:"handsPerHour"`
	}

	// DaySummary groups the sessions started on one local calendar day.
	DaySummary struct {
		Date         string `json:"date"`
		SessionCount int    `json:"sessionCount"`
		TotalSeconds int64  `json:"totalSeconds"`
		PlaySeconds  int64  `json:"playSeconds"`
		HandsPlayed  int    `json:"handsPlayed"`
		Skipped      int    `json:"skipped"`
	}
)

// within reports whether t lies in [start, end].
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// DailyPlayHours sums play time per local calendar day for sessions started
// within windowDays of ref. Days whose play time rounds to 0.00 hours are
// omitted.
func DailyPlayHours(
	sessions []session.Session,
	windowDays int,
	ref time.Time,
	opts Options,
) Series {
	start := ref.AddDate(0, 0, -windowDays)

	var series Series

	playMillis := make(map[string]int64)

	for i := range sessions {
		sess := &sessions[i]

		if !within(sess.OverallStartTime, start, ref) {
			continue
		}

		d, err := sess.Durations()
		if err != nil {
			series.Skipped++
			continue
		}

		if d.PlayMillis == 0 {
			continue
		}

		playMillis[timeutil.DayKey(sess.OverallStartTime, opts.loc())] += d.PlayMillis
	}

	series.Points = make([]Point, 0, len(playMillis))

	for day, ms := range playMillis {
		hours := timeutil.ToHours(ms)
		if hours == 0 {
			continue
		}

		series.Points = append(series.Points, Point{
			Date:  day,
			Hours: hours,
		})
	}

	// day keys are zero-padded so lexical order is chronological
	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].Date < series.Points[j].Date
	})

	return series
}

// PlayVsSelectRatio sums play and select time across all sessions. A type
// whose total rounds to 0.00 hours contributes no entry.
func PlayVsSelectRatio(sessions []session.Session) Ratio {
	var (
		ratio            Ratio
		play, selectTime int64
	)

	for i := range sessions {
		d, err := sessions[i].Durations()
		if err != nil {
			ratio.Skipped++
			continue
		}

		play += d.PlayMillis
		selectTime += d.SelectMillis
	}

	ratio.PlayHours = timeutil.ToHours(play)
	ratio.SelectHours = timeutil.ToHours(selectTime)

	if ratio.PlayHours > 0 {
		ratio.Entries = append(ratio.Entries, Slice{session.Play, ratio.PlayHours})
	}

	if ratio.SelectHours > 0 {
		ratio.Entries = append(ratio.Entries, Slice{session.Select, ratio.SelectHours})
	}

	return ratio
}

// Bounds returns the inclusive interval selected by mode around ref. The
// boolean is false for config.RangeAll, which is unbounded.
func Bounds(
	mode config.RangeMode,
	customDays int,
	ref time.Time,
	opts Options,
) (start, end time.Time, bounded bool) {
	local := ref.In(opts.loc())

	switch mode {
	case config.RangeWeek:
		return timeutil.StartOfWeek(local, opts.WeekStart),
			timeutil.EndOfWeek(local, opts.WeekStart), true
	case config.RangeMonth:
		return timeutil.StartOfMonth(local), timeutil.EndOfMonth(local), true
	case config.RangeCustom:
		return ref.AddDate(0, 0, -customDays), ref, true
	case config.RangeAll:
	}

	return time.Time{}, time.Time{}, false
}

// FilterByRange returns the sessions whose start falls in the interval
// selected by mode, preserving their order.
func FilterByRange(
	sessions []session.Session,
	mode config.RangeMode,
	customDays int,
	ref time.Time,
	opts Options,
) []session.Session {
	start, end, bounded := Bounds(mode, customDays, ref, opts)
	if !bounded {
		return sessions
	}

	filtered := make([]session.Session, 0, len(sessions))

	for i := range sessions {
		if within(sessions[i].OverallStartTime, start, end) {
			filtered = append(filtered, sessions[i])
		}
	}

	return filtered
}

// handsPerHour rounds hands over play hours to the nearest integer.
func handsPerHour(hands int, playSeconds int64) int {
	if playSeconds <= 0 {
		return 0
	}

	return timeutil.Round(float64(hands) / (float64(playSeconds) / 3600))
}

// PerSessionMetrics computes the durations and hands-per-hour rate of a
// finalized session.
func PerSessionMetrics(sess *session.Session) (Metrics, error) {
	d, err := sess.Durations()
	if err != nil {
		return Metrics{}, err
	}

	return Metrics{
		TotalSeconds:  d.TotalSeconds,
		PlaySeconds:   d.PlaySeconds,
		SelectSeconds: d.SelectSeconds,
		HandsPerHour:  handsPerHour(sess.HandsPlayed, d.PlaySeconds),
	}, nil
}

// PerDaySummary summarises the sessions started on the local calendar day of
// date.
func PerDaySummary(
	sessions []session.Session,
	date time.Time,
	opts Options,
) DaySummary {
	summary := DaySummary{Date: timeutil.DayKey(date, opts.loc())}

	for i := range sessions {
		sess := &sessions[i]

		if timeutil.DayKey(sess.OverallStartTime, opts.loc()) != summary.Date {
			continue
		}

		d, err := sess.Durations()
		if err != nil {
			summary.Skipped++
			continue
		}

		summary.SessionCount++
		summary.TotalSeconds += d.TotalSeconds
		summary.PlaySeconds += d.PlaySeconds
		summary.HandsPlayed += sess.HandsPlayed
	}

	return summary
}
