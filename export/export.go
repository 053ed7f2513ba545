// Package export writes recorded sessions to a spreadsheet
package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pokertime/pokertime/internal/pathutil"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

// SheetName is the name of the worksheet holding the sessions.
const SheetName = "Sessions"

const dateLayout = "2006-01-02 15:04:05"

var (
	// ErrNoData is returned when there are no sessions to export.
	ErrNoData = errors.New("there are no sessions to export")

	errWriteSheet = errors.New("unable to write the spreadsheet")
)

var (
	columns = []string{
		"Date",
		"Total hours",
		"Play hours",
		"Select hours",
		"Hands played",
		"Notes",
	}

	widths = []float64{20, 20, 20, 22, 18, 50}
)

// Row is one exported session.
type Row struct {
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
	TotalHours  float64 `json:"totalHours"`
	PlayHours   float64 `json:"playHours"`
	SelectHours float64 `json:"selectHours"`
	HandsPlayed int     `json:"handsPlayed"`
}

func (r *Row) values() []any {
	return []any{
		r.Date,
		r.TotalHours,
		r.PlayHours,
		r.SelectHours,
		r.HandsPlayed,
		r.Notes,
	}
}

// Rows converts sessions into export rows in their given order. Sessions
// whose durations cannot be computed are skipped and counted.
func Rows(sessions []session.Session, loc *time.Location) (rows []Row, skipped int) {
	rows = make([]Row, 0, len(sessions))

	for i := range sessions {
		sess := &sessions[i]

		d, err := sess.Durations()
		if err != nil {
			skipped++
			continue
		}

		rows = append(rows, Row{
			Date:        sess.LocalStart(loc).Format(dateLayout),
			TotalHours:  timeutil.ToHours(d.TotalMillis),
			PlayHours:   timeutil.ToHours(d.PlayMillis),
			SelectHours: timeutil.ToHours(d.SelectMillis),
			HandsPlayed: sess.HandsPlayed,
			Notes:       sess.Notes,
		})
	}

	return rows, skipped
}

// WriteXLSX writes rows to an .xlsx workbook at path and returns the path
// actually written.
func WriteXLSX(path string, rows []Row) (string, error) {
	if len(rows) == 0 {
		return "", ErrNoData
	}

	path = pathutil.EnsureExt(path, ".xlsx")

	f := excelize.NewFile()

	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("%w: %w", errWriteSheet, err)
	}

	if err := writeSheet(f, rows); err != nil {
		return "", fmt.Errorf("%w: %w", errWriteSheet, err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("%w: %w", errWriteSheet, err)
	}

	return path, nil
}

func writeSheet(f *excelize.File, rows []Row) error {
	if err := f.SetSheetRow(SheetName, "A1", &columns); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(SheetName, "A1", last+"1", bold); err != nil {
		return err
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return err
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		values := rows[i].values()

		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	return nil
}
