package stats

import (
	"time"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

type (
	// Target tracks one monthly goal. All fields are zero when no goal is
	// set.
	Target struct {
		Goal      float64 `json:"goal"`
		Done      float64 `json:"done"`
		Remaining float64 `json:"remaining"`
		// DailyPlan spreads what remains over the days left in the month
		DailyPlan float64 `json:"dailyPlan"`
	}

	// Progress is the month-to-date standing against the configured goals.
	Progress struct {
		Month    string `json:"month"`
		DaysLeft int    `json:"daysLeft"`
		Hours    Target `json:"hours"`
		Hands    Target `json:"hands"`
		Sessions Target `json:"sessions"`
		Skipped  int    `json:"skipped"`
	}
)

func newTarget(goal, done float64, daysLeft int) Target {
	if goal <= 0 {
		return Target{Done: done}
	}

	t := Target{
		Goal:      goal,
		Done:      done,
		Remaining: max(0, goal-done),
	}

	if daysLeft > 0 {
		t.DailyPlan = timeutil.RoundTo2(t.Remaining / float64(daysLeft))
	}

	return t
}

// GoalProgress measures the sessions started between the start of ref's
// month and ref against goals. The day of ref counts as a day left.
func GoalProgress(
	sessions []session.Session,
	goals config.Goals,
	ref time.Time,
	opts Options,
) Progress {
	local := ref.In(opts.loc())
	start := timeutil.StartOfMonth(local)

	p := Progress{
		Month:    local.Format("January 2006"),
		DaysLeft: timeutil.DaysIn(local) - local.Day() + 1,
	}

	var (
		playMillis int64
		hands      int
		count      int
	)

	for i := range sessions {
		sess := &sessions[i]

		if !within(sess.OverallStartTime, start, ref) {
			continue
		}

		d, err := sess.Durations()
		if err != nil {
			p.Skipped++
			continue
		}

		playMillis += d.PlayMillis
		hands += sess.HandsPlayed
		count++
	}

	p.Hours = newTarget(goals.HoursPerMonth, timeutil.ToHours(playMillis), p.DaysLeft)
	p.Hands = newTarget(float64(goals.HandsPerMonth), float64(hands), p.DaysLeft)
	p.Sessions = newTarget(float64(goals.SessionsPerMonth), float64(count), p.DaysLeft)

	return p
}
