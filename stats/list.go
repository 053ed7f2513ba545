package stats

import (
	"sort"
	"time"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

type (
	// Row is one session in the list view.
	Row struct {
		ID          string    `json:"id"`
		Start       time.Time `json:"start"`
		End         time.Time `json:"end"`
		Notes       string    `json:"notes"`
		HandsPlayed int       `json:"handsPlayed"`
		Metrics

		// DaySessions is the number of sessions started the same day
		DaySessions int `json:"daySessions"`
		// DailyPlan is the monthly hours goal spread evenly over the month
		DailyPlan          float64 `json:"dailyPlan"`
		DailyPlanRemaining float64 `json:"dailyPlanRemaining"`
		// MonthPlayHours is the play time of the month up to and including
		// the session's day
		MonthPlayHours     float64 `json:"monthPlayHours"`
		MonthPlanRemaining float64 `json:"monthPlanRemaining"`
	}

	// List holds the rows of the list view, newest first.
	List struct {
		Rows    []Row `json:"rows"`
		Skipped int   `json:"skipped"`
	}
)

// ListRows builds the list view for the sessions selected by the list view
// date range.
func ListRows(
	sessions []session.Session,
	settings config.Settings,
	ref time.Time,
	opts Options,
) List {
	lv := settings.ListViewOptions

	selected := FilterByRange(
		sessions,
		lv.DateRangeMode,
		lv.CustomDateRangeDays,
		ref,
		opts,
	)

	var list List

	dayPlay := make(map[string]int64)
	dayCount := make(map[string]int)

	for i := range selected {
		sess := &selected[i]

		m, err := PerSessionMetrics(sess)
		if err != nil {
			list.Skipped++
			continue
		}

		start := sess.LocalStart(opts.loc())
		day := start.Format(timeutil.DayLayout)

		dayPlay[day] += m.PlaySeconds
		dayCount[day]++

		list.Rows = append(list.Rows, Row{
			ID:          sess.ID,
			Start:       start,
			End:         sess.OverallEndTime.In(opts.loc()),
			Notes:       sess.Notes,
			HandsPlayed: sess.HandsPlayed,
			Metrics:     m,
		})
	}

	goal := settings.Goals.HoursPerMonth

	for i := range list.Rows {
		row := &list.Rows[i]
		day := row.Start.Format(timeutil.DayLayout)

		row.DaySessions = dayCount[day]

		var monthPlay int64

		// month-to-date play time within the selected range
		for d, secs := range dayPlay {
			if d[:7] == day[:7] && d <= day {
				monthPlay += secs
			}
		}

		row.MonthPlayHours = timeutil.SecondsToHours(monthPlay)

		if goal <= 0 {
			continue
		}

		row.DailyPlan = timeutil.RoundTo2(goal / float64(timeutil.DaysIn(row.Start)))
		row.DailyPlanRemaining = max(
			0,
			timeutil.RoundTo2(row.DailyPlan-timeutil.SecondsToHours(dayPlay[day])),
		)
		row.MonthPlanRemaining = max(0, timeutil.RoundTo2(goal-row.MonthPlayHours))
	}

	sort.SliceStable(list.Rows, func(i, j int) bool {
		return list.Rows[i].Start.After(list.Rows[j].Start)
	})

	return list
}
