package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/samber/do/v2"
	"github.com/urfave/cli/v2"

	"github.com/pokertime/pokertime/export"
	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/osutil"
	"github.com/pokertime/pokertime/internal/pathutil"
	"github.com/pokertime/pokertime/internal/ui"
	"github.com/pokertime/pokertime/report"
	"github.com/pokertime/pokertime/repository"
	"github.com/pokertime/pokertime/stats"
	"github.com/pokertime/pokertime/timer"
)

var (
	errInvalidRange  = errors.New("invalid date range")
	errInvalidWindow = errors.New("the number of days must be positive")
	errNoEditor      = errors.New("no text editor configured")
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func printJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(config.Stdout, string(b))

	return err
}

func (a *application) repository() (*repository.Repository, error) {
	return do.Invoke[*repository.Repository](a.injector)
}

func (a *application) settingsStore() (*config.SettingsStore, error) {
	return do.Invoke[*config.SettingsStore](a.injector)
}

// settings returns the effective settings and applies the theme to the
// terminal output.
func (a *application) settings() (config.Settings, error) {
	s, err := a.settingsStore()
	if err != nil {
		return config.Settings{}, err
	}

	settings := s.Get()

	ui.SetTheme(settings.Theme)

	return settings, nil
}

func (a *application) statsOptions() stats.Options {
	return stats.Options{
		Location:  a.opts.Location,
		WeekStart: a.opts.Weekday,
	}
}

// startAction runs the live tracker. A saved session is followed by the
// details form, the notification and the post-session command.
func (a *application) startAction(ctx *cli.Context) error {
	repo, err := a.repository()
	if err != nil {
		return err
	}

	settings, err := a.settings()
	if err != nil {
		return err
	}

	var at time.Time

	if v := ctx.String("at"); v != "" {
		at, err = a.referenceTime(v)
		if err != nil {
			return err
		}
	}

	sess, outcome, err := timer.Track(ctx.Context, repo, settings, at)
	if err != nil {
		return err
	}

	if outcome != timer.Saved {
		slog.InfoContext(ctx.Context, "session discarded")
		return nil
	}

	patch, err := timer.PromptDetails(sess, settings)
	if err != nil {
		report.Error(err)
	}

	if err == nil && !emptyPatch(patch) {
		sess, err = repo.Update(sess.ID, patch)
		if err != nil {
			return err
		}
	}

	if a.opts.Notify {
		if err := timer.Notify(sess); err != nil {
			slog.WarnContext(ctx.Context, "notification failed", slog.Any("error", err))
		}
	}

	if err := timer.RunSessionCmd(ctx.Context, a.opts.PostSessionCmd, sess); err != nil {
		return fmt.Errorf("post_session_cmd failed: %w", err)
	}

	return nil
}

// listAction prints the sessions selected by the list view date range,
// which --range and --days override.
func (a *application) listAction(ctx *cli.Context) error {
	repo, err := a.repository()
	if err != nil {
		return err
	}

	settings, err := a.settings()
	if err != nil {
		return err
	}

	lv := &settings.ListViewOptions

	if ctx.IsSet("range") {
		mode := config.RangeMode(ctx.String("range"))
		if !mode.Valid() {
			return fmt.Errorf(
				"%w: %q (expected one of %s)",
				errInvalidRange,
				mode,
				rangeModes(),
			)
		}

		lv.DateRangeMode = mode
	}

	if ctx.IsSet("days") {
		days := ctx.Int("days")
		if days <= 0 {
			return errInvalidWindow
		}

		lv.CustomDateRangeDays = days

		if !ctx.IsSet("range") {
			lv.DateRangeMode = config.RangeCustom
		}
	}

	ref, err := a.referenceTime(ctx.String("at"))
	if err != nil {
		return err
	}

	list := stats.ListRows(repo.List(), settings, ref, a.statsOptions())

	if ctx.Bool("json") {
		return printJSON(list)
	}

	stats.PrintList(config.Stdout, list, settings)

	return nil
}

// calendarAction prints a month of sessions laid out by week.
func (a *application) calendarAction(ctx *cli.Context) error {
	repo, err := a.repository()
	if err != nil {
		return err
	}

	if _, err = a.settings(); err != nil {
		return err
	}

	month := a.now()

	if v := ctx.String("month"); v != "" {
		month, err = parseTime(v, a.now(), a.opts.Location)
		if err != nil {
			return err
		}
	}

	m := stats.Calendar(repo.List(), month, a.statsOptions())

	if ctx.Bool("json") {
		return printJSON(m)
	}

	stats.PrintCalendar(config.Stdout, m, a.opts.Weekday)

	return nil
}

// statsAction reports the daily play chart, the play/select ratio and the
// progress against the monthly goals.
func (a *application) statsAction(ctx *cli.Context) error {
	days := ctx.Int("days")
	if days <= 0 {
		return errInvalidWindow
	}

	repo, err := a.repository()
	if err != nil {
		return err
	}

	settings, err := a.settings()
	if err != nil {
		return err
	}

	ref, err := a.referenceTime(ctx.String("at"))
	if err != nil {
		return err
	}

	sessions := repo.List()
	opts := a.statsOptions()

	r := stats.Report{
		Daily:      stats.DailyPlayHours(sessions, days, ref, opts),
		Ratio:      stats.PlayVsSelectRatio(sessions),
		Goals:      stats.GoalProgress(sessions, settings.Goals, ref, opts),
		WindowDays: days,
	}

	if ctx.Bool("json") {
		return printJSON(r)
	}

	if len(sessions) == 0 {
		pterm.Info.Println("No sessions recorded yet")
		return nil
	}

	stats.Print(config.Stdout, r)

	return nil
}

// exportAction writes every session to a spreadsheet, or prints the rows
// with --json.
func (a *application) exportAction(ctx *cli.Context) error {
	repo, err := a.repository()
	if err != nil {
		return err
	}

	rows, skipped := export.Rows(repo.List(), a.opts.Location)

	if ctx.Bool("json") {
		return printJSON(rows)
	}

	path := firstNonEmptyString(ctx.String("out"), a.opts.ExportPath)
	if path == "" {
		path = pathutil.ExportFilePath()
	}

	written, err := export.WriteXLSX(path, rows)
	if errors.Is(err, export.ErrNoData) {
		report.Warn("There are no sessions to export")
		return nil
	}

	if err != nil {
		return err
	}

	slog.InfoContext(ctx.Context, "sessions exported",
		slog.String("path", written),
		slog.Int("rows", len(rows)),
	)

	report.Exported(written, skipped)

	return nil
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func (a *application) editConfigAction(_ *cli.Context) error {
	editor, err := shellquote.Split(osutil.Editor())
	if err != nil {
		return err
	}

	if len(editor) == 0 {
		return errNoEditor
	}

	args := append(editor[1:], a.opts.ConfigPath)

	cmd := exec.Command(editor[0], args...)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}
