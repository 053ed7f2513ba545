package stats

import (
	"time"

	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

// Month is the calendar overlay of a single month: one summary for every
// day, including days without sessions.
type Month struct {
	Start   time.Time    `json:"start"`
	Days    []DaySummary `json:"days"`
	Skipped int          `json:"skipped"`
}

// Calendar summarises each local day of the month containing month.
func Calendar(
	sessions []session.Session,
	month time.Time,
	opts Options,
) Month {
	start := timeutil.StartOfMonth(month.In(opts.loc()))

	m := Month{
		Start: start,
		Days:  make([]DaySummary, timeutil.DaysIn(start)),
	}

	index := make(map[string]int, len(m.Days))

	for i := range m.Days {
		key := start.AddDate(0, 0, i).Format(timeutil.DayLayout)
		m.Days[i].Date = key
		index[key] = i
	}

	for i := range sessions {
		sess := &sessions[i]

		day, ok := index[timeutil.DayKey(sess.OverallStartTime, opts.loc())]
		if !ok {
			continue
		}

		d, err := sess.Durations()
		if err != nil {
			m.Days[day].Skipped++
			m.Skipped++

			continue
		}

		m.Days[day].SessionCount++
		m.Days[day].TotalSeconds += d.TotalSeconds
		m.Days[day].PlaySeconds += d.PlaySeconds
		m.Days[day].HandsPlayed += sess.HandsPlayed
	}

	return m
}
