// Package ui holds the terminal styling shared by the report views
package ui

import (
	"github.com/pterm/pterm"

	"github.com/pokertime/pokertime/internal/config"
)

type palette struct {
	play      pterm.Color
	accent    pterm.Color
	remaining pterm.Color
	heading   pterm.Color
	warning   pterm.Color
	highlight pterm.Color
}

var (
	darkPalette = palette{
		play:      pterm.FgLightGreen,
		accent:    pterm.FgLightCyan,
		remaining: pterm.FgLightMagenta,
		heading:   pterm.FgLightBlue,
		warning:   pterm.FgLightRed,
		highlight: pterm.FgLightWhite,
	}

	lightPalette = palette{
		play:      pterm.FgGreen,
		accent:    pterm.FgCyan,
		remaining: pterm.FgMagenta,
		heading:   pterm.FgBlue,
		warning:   pterm.FgRed,
		highlight: pterm.FgBlack,
	}

	active = darkPalette
)

// SetTheme selects the colours used by every helper in this package.
// Unknown themes fall back to the dark palette.
func SetTheme(theme config.Theme) {
	if theme == config.ThemeLight {
		active = lightPalette
		return
	}

	active = darkPalette
}

// Green colours play time and completed amounts.
func Green(a any) string {
	return active.play.Sprint(a)
}

func Cyan(a any) string {
	return active.accent.Sprint(a)
}

func Magenta(a any) string {
	return active.remaining.Sprint(a)
}

// Blue colours section headings.
func Blue(a any) string {
	return active.heading.Sprint(a)
}

func Red(a any) string {
	return active.warning.Sprint(a)
}

// Highlight makes calendar days with sessions stand out.
func Highlight(a any) string {
	return active.highlight.Sprint(a)
}
