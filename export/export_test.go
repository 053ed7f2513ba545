package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pokertime/pokertime/internal/session"
)

func finalized(start time.Time, play, sel time.Duration) session.Session {
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
	sess.HandsPlayed = 210
	sess.Notes = "deep run"

	return *sess
}

func TestRows(t *testing.T) {
	start := time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC)

	good := finalized(start, 90*time.Minute, 30*time.Minute)

	bad := finalized(start.Add(time.Hour), time.Hour, 0)
	before := bad.OverallStartTime.Add(-time.Second)
	bad.OverallEndTime = &before

	rows, skipped := Rows([]session.Session{good, bad}, time.UTC)

	assert.Equal(t, 1, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{
		Date:        "2024-03-01 20:00:00",
		TotalHours:  2,
		PlayHours:   1.5,
		SelectHours: 0.5,
		HandsPlayed: 210,
		Notes:       "deep run",
	}, rows[0])
}

func TestWriteXLSX(t *testing.T) {
	start := time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC)

	rows, _ := Rows([]session.Session{
		finalized(start, 90*time.Minute, 30*time.Minute),
	}, time.UTC)

	path, err := WriteXLSX(filepath.Join(t.TempDir(), "report"), rows)
	require.NoError(t, err)
	assert.Equal(t, ".xlsx", filepath.Ext(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)

	t.Cleanup(func() { f.Close() })

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, columns, got[0])
	assert.Equal(t, []string{"2024-03-01 20:00:00", "2", "1.5", "0.5", "210", "deep run"}, got[1])

	width, err := f.GetColWidth(SheetName, "F")
	require.NoError(t, err)
	assert.InDelta(t, 50, width, 0.01)
}

func TestWriteXLSXNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	_, err := WriteXLSX(path, nil)
	assert.ErrorIs(t, err, ErrNoData)
	assert.NoFileExists(t, path)
}
