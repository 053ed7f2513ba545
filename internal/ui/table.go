package ui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pterm/pterm"
)

// Table renders data as a boxed table whose first row is the header.
func Table(data [][]string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	return pterm.DefaultTable.
		WithBoxed().
		WithHasHeader().
		WithData(data).
		Srender()
}

// PrintTable writes the rendered table to w. Render failures are reported
// to the user instead of aborting the command.
func PrintTable(w io.Writer, data [][]string) {
	str, err := Table(data)
	if err != nil {
		slog.Error("rendering table", slog.Any("error", err))
		pterm.Error.Printfln("failed to render table: %s", err)

		return
	}

	fmt.Fprintln(w, str)
}
