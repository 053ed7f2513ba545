package app

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/pokertime/pokertime/export"
	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/repository"
	"github.com/pokertime/pokertime/stats"
	"github.com/pokertime/pokertime/store"
)

var now = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

type harness struct {
	app *application
	mem *store.Memory
	out *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		mem: store.NewMemory(),
		out: &bytes.Buffer{},
	}

	stdout, stdin := config.Stdout, config.Stdin
	config.Stdout = h.out

	t.Cleanup(func() {
		config.Stdout = stdout
		config.Stdin = stdin
	})

	a := newApplication()
	a.now = func() time.Time { return now }
	a.load = func(_ *cli.Context) error {
		opts := config.DefaultOptions()
		opts.Location = time.UTC
		opts.Notify = false

		injector := do.New()
		do.ProvideValue(injector, opts)
		do.ProvideValue[store.Storage](injector, h.mem)
		registerServices(injector)

		a.opts = opts
		a.injector = injector

		return nil
	}

	h.app = a

	return h
}

func (h *harness) run(args ...string) error {
	return h.app.cliApp().RunContext(
		context.Background(),
		append([]string{"pokertime"}, args...),
	)
}

// seed appends finalized sessions of play then select time starting at each
// of starts.
func (h *harness) seed(t *testing.T, play, sel time.Duration, starts ...time.Time) []string {
	t.Helper()

	repo, err := repository.New(h.mem)
	require.NoError(t, err)

	ids := make([]string, 0, len(starts))

	for _, start := range starts {
		sess := session.New(start)

		switchAt := start.Add(play)
		end := switchAt.Add(sel)

		sess.Periods[0].EndTime = &switchAt
		sess.Periods = append(sess.Periods, session.Period{
			Type:      session.Select,
			StartTime: switchAt,
			EndTime:   &end,
		})
		sess.OverallEndTime = &end

		saved, err := repo.Append(sess)
		require.NoError(t, err)

		ids = append(ids, saved.ID)
	}

	return ids
}

func TestListJSON(t *testing.T) {
	h := newHarness(t)
	h.seed(t, time.Hour, 30*time.Minute,
		now.Add(-48*time.Hour),
		now.Add(-30*24*time.Hour),
	)

	require.NoError(t, h.run("list", "--json", "--range", "all"))

	var list stats.List

	require.NoError(t, json.Unmarshal(h.out.Bytes(), &list))
	require.Len(t, list.Rows, 2)
	assert.True(t, list.Rows[0].Start.After(list.Rows[1].Start))
	assert.Equal(t, int64(3600), list.Rows[0].PlaySeconds)
}

func TestListDaysImpliesCustomRange(t *testing.T) {
	h := newHarness(t)
	h.seed(t, time.Hour, 0,
		now.Add(-48*time.Hour),
		now.Add(-30*24*time.Hour),
	)

	require.NoError(t, h.run("list", "--json", "--days", "7"))

	var list stats.List

	require.NoError(t, json.Unmarshal(h.out.Bytes(), &list))
	assert.Len(t, list.Rows, 1)
}

func TestListRejectsUnknownRange(t *testing.T) {
	h := newHarness(t)

	err := h.run("list", "--range", "year")
	assert.ErrorIs(t, err, errInvalidRange)
}

func TestStatsJSON(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 2*time.Hour, 30*time.Minute,
		now.Add(-24*time.Hour),
		now.Add(-72*time.Hour),
	)

	require.NoError(t, h.run("stats", "--json", "--days", "7"))

	var r stats.Report

	require.NoError(t, json.Unmarshal(h.out.Bytes(), &r))
	assert.Equal(t, 7, r.WindowDays)
	assert.Len(t, r.Daily.Points, 2)
	assert.InDelta(t, 4.0, r.Ratio.PlayHours, 0.001)
	assert.InDelta(t, 1.0, r.Ratio.SelectHours, 0.001)
	assert.Equal(t, 2, int(r.Goals.Sessions.Done))
}

func TestStatsRejectsNonPositiveWindow(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.run("stats", "--days", "0"), errInvalidWindow)
}

func TestCalendarJSON(t *testing.T) {
	h := newHarness(t)
	h.seed(t, time.Hour, 0, now.Add(-24*time.Hour))

	require.NoError(t, h.run("calendar", "--json"))

	var m stats.Month

	require.NoError(t, json.Unmarshal(h.out.Bytes(), &m))
	require.Len(t, m.Days, 31)
	assert.Equal(t, 1, m.Days[18].SessionCount)
}

func TestEditWithFlags(t *testing.T) {
	h := newHarness(t)
	ids := h.seed(t, time.Hour, 0, now.Add(-24*time.Hour))

	require.NoError(t, h.run("edit", "--notes", "bubble", "--hands", "140", "--yes", ids[0]))

	repo, err := repository.New(h.mem)
	require.NoError(t, err)

	sess, err := repo.Get(ids[0])
	require.NoError(t, err)
	assert.Equal(t, "bubble", sess.Notes)
	assert.Equal(t, 140, sess.HandsPlayed)
}

func TestEditAsksForConfirmation(t *testing.T) {
	h := newHarness(t)
	ids := h.seed(t, time.Hour, 0, now.Add(-24*time.Hour))

	config.Stdin = strings.NewReader("\n")

	require.NoError(t, h.run("edit", "--hands", "90", ids[0]))
	assert.Contains(t, h.out.String(), "will be updated")
	assert.Contains(t, h.out.String(), ids[0])
}

func TestEditErrors(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.run("edit"), errMissingID)
	assert.ErrorIs(t, h.run("edit", "--hands", "1", "--yes", "nope"), repository.ErrNotFound)

	ids := h.seed(t, time.Hour, 0, now.Add(-24*time.Hour))
	assert.ErrorIs(
		t,
		h.run("edit", "--hands", "-1", "--yes", ids[0]),
		repository.ErrInvalidSession,
	)
}

func TestSettingsSetAndShow(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("settings", "set", "goals.hoursPerMonth", "80"))

	b, err := h.mem.Load(config.SettingsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"goals":{"hoursPerMonth":80}}`, string(b))

	require.NoError(t, h.run("settings", "show", "--json"))

	var got config.Settings

	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))

	want := config.DefaultSettings()
	want.Goals.HoursPerMonth = 80
	assert.Equal(t, want, got)

	h.out.Reset()

	require.NoError(t, h.run("settings", "show"))
	assert.Contains(t, h.out.String(), "hoursPerMonth: 80")
}

func TestSettingsSetErrors(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.run("settings", "set", "goals.hours"), errSettingArgs)
	assert.ErrorIs(t, h.run("settings", "set", "bogus", "1"), config.ErrUnknownSetting)
	assert.ErrorIs(t, h.run("settings", "set", "theme", "neon"), config.ErrInvalidSetting)
}

func TestSettingsReset(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("settings", "set", "theme", "light"))
	require.NoError(t, h.run("settings", "reset"))

	b, err := h.mem.Load(config.SettingsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.seed(t, time.Hour, 30*time.Minute, now.Add(-24*time.Hour))

	out := filepath.Join(t.TempDir(), "sessions.xlsx")

	require.NoError(t, h.run("export", "--out", out))
	assert.FileExists(t, out)

	h.out.Reset()

	require.NoError(t, h.run("export", "--json"))

	var rows []export.Row

	require.NoError(t, json.Unmarshal(h.out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.InDelta(t, 1.5, rows[0].TotalHours, 0.001)
}

func TestExportWithoutSessions(t *testing.T) {
	h := newHarness(t)

	out := filepath.Join(t.TempDir(), "sessions.xlsx")

	require.NoError(t, h.run("export", "--out", out))
	assert.NoFileExists(t, out)
}

func TestParseTime(t *testing.T) {
	got, err := parseTime("2024-03-01 10:00", now, time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)), got)

	_, err = parseTime("not a date at all", now, time.UTC)
	assert.ErrorIs(t, err, errParseTime)
}

func TestReferenceTimeRejectsFuture(t *testing.T) {
	h := newHarness(t)
	h.app.opts = config.DefaultOptions()
	h.app.opts.Location = time.UTC

	ref, err := h.app.referenceTime("")
	require.NoError(t, err)
	assert.Equal(t, now, ref)

	_, err = h.app.referenceTime("2030-01-01")
	assert.ErrorIs(t, err, errFutureTime)
}
