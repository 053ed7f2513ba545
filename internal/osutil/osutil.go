// Package osutil holds platform constants shared by the CLI
package osutil

import (
	"os"
	"runtime"
)

const (
	Windows = "windows"
	Darwin  = "darwin"
)

type exitCode int

const (
	ExitOK    exitCode = 0
	ExitError exitCode = 1
)

const DirPermission = 0o755

// Exit terminates the process with code.
func Exit(code exitCode) {
	os.Exit(int(code))
}

// Editor returns the user's preferred text editor from $VISUAL or $EDITOR,
// falling back to a platform default.
func Editor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}

	switch runtime.GOOS {
	case Windows:
		return "C:\\Windows\\system32\\notepad.exe"
	case Darwin:
		return "open -t"
	}

	return "nano"
}
