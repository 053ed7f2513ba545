package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/timeutil"
	"github.com/pokertime/pokertime/internal/ui"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
)

// Report is the output of the stats command.
type Report struct {
	Daily      Series   `json:"daily"`
	Ratio      Ratio    `json:"ratio"`
	Goals      Progress `json:"goals"`
	WindowDays int      `json:"windowDays"`
}

func getBarChart(series Series, windowDays int) string {
	if len(series.Points) == 0 {
		return ""
	}

	header := ui.Blue(
		fmt.Sprintf("\nDaily play time, last %d days (minutes)", windowDays),
	)

	bars := make(pterm.Bars, 0, len(series.Points))

	for _, p := range series.Points {
		label := p.Date

		if date, err := time.Parse(timeutil.DayLayout, p.Date); err == nil {
			label = fmt.Sprintf(
				"%s %02d, %d",
				date.Month().String(),
				date.Day(),
				date.Year(),
			)
		}

		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(p.Hours * 60),
			Label: label,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func getRatio(ratio Ratio) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Play vs select"))

	total := ratio.PlayHours + ratio.SelectHours

	var b strings.Builder

	b.WriteString(header)

	for _, s := range ratio.Entries {
		share := s.Hours / total * 100

		fmt.Fprintf(
			&b,
			"%s: %s (%s)\n",
			s.Type.Label(),
			ui.Green(fmt.Sprintf("%.2fh", s.Hours)),
			ui.Green(fmt.Sprintf("%.0f%%", share)),
		)
	}

	if len(ratio.Entries) == 0 {
		b.WriteString("No time recorded\n")
	}

	return b.String()
}

func formatTarget(name string, t Target, unit string) string {
	if t.Goal == 0 {
		return fmt.Sprintf("%s: %s\n", name, ui.Green(formatAmount(t.Done, unit)))
	}

	return fmt.Sprintf(
		"%s: %s of %s (%s left, %s per day)\n",
		name,
		ui.Green(formatAmount(t.Done, unit)),
		formatAmount(t.Goal, unit),
		ui.Magenta(formatAmount(t.Remaining, unit)),
		ui.Cyan(formatAmount(t.DailyPlan, unit)),
	)
}

func formatAmount(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

func getGoals(p Progress) string {
	header := fmt.Sprintf(
		"\n%s\n",
		ui.Blue(fmt.Sprintf("Goals for %s (%d days left)", p.Month, p.DaysLeft)),
	)

	return header +
		formatTarget("Play time", p.Hours, "h") +
		formatTarget("Hands", p.Hands, "") +
		formatTarget("Sessions", p.Sessions, "")
}

func getAnomalies(n int) string {
	if n == 0 {
		return ""
	}

	return ui.Red(fmt.Sprintf("\n%d malformed session(s) were skipped\n", n))
}

// Print writes the stats report to w.
func Print(w io.Writer, r Report) {
	output := fmt.Sprint(
		getRatio(r.Ratio),
		getGoals(r.Goals),
		getBarChart(r.Daily, r.WindowDays),
		getAnomalies(r.Ratio.Skipped),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))
}

// listHeader returns the column titles enabled by the list view options.
func listHeader(lv config.ListViewOptions) []string {
	header := []string{"DATE"}

	if lv.ShowStartTime {
		header = append(header, "START")
	}

	if lv.ShowEndTime {
		header = append(header, "END")
	}

	if lv.ShowSessionCount {
		header = append(header, "SESSIONS")
	}

	if lv.ShowDuration {
		header = append(header, "TOTAL", "PLAY", "SELECT")
	}

	if lv.ShowHandsPerHour {
		header = append(header, "HANDS", "HANDS/H")
	}

	if lv.ShowDailyPlan {
		header = append(header, "DAILY PLAN")
	}

	if lv.ShowDailyPlanRemaining {
		header = append(header, "DAY LEFT")
	}

	if lv.ShowTotalPlayTime {
		header = append(header, "MONTH PLAY")
	}

	if lv.ShowTotalPlanRemaining {
		header = append(header, "MONTH LEFT")
	}

	return append(header, "ID")
}

func dateLayout(lv config.ListViewOptions) string {
	layout := "02"

	if lv.ShowMonth {
		layout = "Jan 02"
	}

	if lv.ShowDayOfWeek {
		layout = "Mon " + layout
	}

	return layout + " 2006"
}

func hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "h"
}

func listRow(row *Row, lv config.ListViewOptions, showNotes bool) []string {
	cells := []string{row.Start.Format(dateLayout(lv))}

	if lv.ShowStartTime {
		cells = append(cells, row.Start.Format("15:04"))
	}

	if lv.ShowEndTime {
		cells = append(cells, row.End.Format("15:04"))
	}

	if lv.ShowSessionCount {
		cells = append(cells, strconv.Itoa(row.DaySessions))
	}

	if lv.ShowDuration {
		cells = append(cells,
			timeutil.FormatClock(row.TotalSeconds),
			ui.Green(timeutil.FormatClock(row.PlaySeconds)),
			timeutil.FormatClock(row.SelectSeconds),
		)
	}

	if lv.ShowHandsPerHour {
		cells = append(cells,
			strconv.Itoa(row.HandsPlayed),
			strconv.Itoa(row.HandsPerHour),
		)
	}

	if lv.ShowDailyPlan {
		cells = append(cells, hours(row.DailyPlan))
	}

	if lv.ShowDailyPlanRemaining {
		cells = append(cells, hours(row.DailyPlanRemaining))
	}

	if lv.ShowTotalPlayTime {
		cells = append(cells, hours(row.MonthPlayHours))
	}

	if lv.ShowTotalPlanRemaining {
		cells = append(cells, hours(row.MonthPlanRemaining))
	}

	id := row.ID
	if showNotes && row.Notes != "" {
		id += "\n" + ui.Cyan(row.Notes)
	}

	return append(cells, id)
}

// ListTable converts the list view into table data with a header row.
func ListTable(list List, settings config.Settings) [][]string {
	lv := settings.ListViewOptions

	data := [][]string{listHeader(lv)}

	for i := range list.Rows {
		data = append(data, listRow(&list.Rows[i], lv, settings.ShowNotes))
	}

	return data
}

// PrintList writes the list view to w as a table.
func PrintList(w io.Writer, list List, settings config.Settings) {
	if len(list.Rows) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	ui.PrintTable(w, ListTable(list, settings))

	if list.Skipped > 0 {
		fmt.Fprint(w, getAnomalies(list.Skipped))
	}
}

// CalendarTable lays the month out in weeks beginning on weekStart. Each day
// cell shows the day of month and, when sessions were played, their count
// and total time.
func CalendarTable(m Month, weekStart time.Weekday) [][]string {
	header := make([]string, 0, 7)

	for i := 0; i < 7; i++ {
		header = append(header, time.Weekday((int(weekStart)+i)%7).String()[:3])
	}

	data := [][]string{header}

	offset := (int(m.Start.Weekday()) - int(weekStart) + 7) % 7

	week := make([]string, offset, 7)

	for i, day := range m.Days {
		cell := strconv.Itoa(i + 1)

		if day.SessionCount > 0 {
			cell = fmt.Sprintf(
				"%s %s",
				ui.Highlight(cell),
				ui.Green(fmt.Sprintf("%d× %s", day.SessionCount, timeutil.FormatHuman(day.TotalSeconds))),
			)
		}

		week = append(week, cell)

		if len(week) == 7 {
			data = append(data, week)
			week = make([]string, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, "")
		}

		data = append(data, week)
	}

	return data
}

// PrintCalendar writes the calendar overlay of a month to w.
func PrintCalendar(w io.Writer, m Month, weekStart time.Weekday) {
	fmt.Fprintln(w, ui.Blue(m.Start.Format("January 2006")))

	ui.PrintTable(w, CalendarTable(m, weekStart))

	if m.Skipped > 0 {
		fmt.Fprint(w, getAnomalies(m.Skipped))
	}
}
