// Package report prints user-facing status messages
package report

import (
	"github.com/pterm/pterm"

	"github.com/pokertime/pokertime/internal/osutil"
)

func SessionUpdated(id string) {
	pterm.Success.Printfln("session %s updated", id)
}

func SettingsUpdated() {
	pterm.Success.Println("settings saved")
}

func Exported(path string, skipped int) {
	pterm.Success.Printfln("sessions exported to %s", path)

	if skipped > 0 {
		pterm.Warning.Printfln("%d malformed session(s) were left out", skipped)
	}
}

func Warn(msg string) {
	pterm.Warning.Println(msg)
}

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	pterm.Error.Println(err)
	osutil.Exit(osutil.ExitError)
}
