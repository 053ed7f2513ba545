package timer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pokertime/pokertime/internal/config"
)

type palette struct {
	main   lipgloss.Color
	play   lipgloss.Color
	sel    lipgloss.Color
	muted  lipgloss.Color
	danger lipgloss.Color
	badge  lipgloss.Color
}

var (
	darkPalette = palette{
		main:   lipgloss.Color("#F9FAFB"),
		play:   lipgloss.Color("#B0DB43"),
		sel:    lipgloss.Color("#F59E0B"),
		muted:  lipgloss.Color("#6B7280"),
		danger: lipgloss.Color("#EF4444"),
		badge:  lipgloss.Color("#1F2937"),
	}

	lightPalette = palette{
		main:   lipgloss.Color("#111827"),
		play:   lipgloss.Color("#15803D"),
		sel:    lipgloss.Color("#B45309"),
		muted:  lipgloss.Color("#4B5563"),
		danger: lipgloss.Color("#B91C1C"),
		badge:  lipgloss.Color("#F9FAFB"),
	}
)

// Style holds the styles used by the tracking view.
type Style struct {
	Base      lipgloss.Style
	Title     lipgloss.Style
	Clock     lipgloss.Style
	Play      lipgloss.Style
	Select    lipgloss.Style
	Secondary lipgloss.Style
	Hint      lipgloss.Style
	Error     lipgloss.Style
}

// NewStyle returns the tracking view styles for theme.
func NewStyle(theme config.Theme) Style {
	p := darkPalette
	if theme == config.ThemeLight {
		p = lightPalette
	}

	return Style{
		Base: lipgloss.NewStyle().
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.main),
		Clock: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.main).
			MarginTop(1).
			MarginBottom(1),
		Play: lipgloss.NewStyle().
			Bold(true).
			Background(p.play).
			Foreground(p.badge).
			Padding(0, 1),
		Select: lipgloss.NewStyle().
			Bold(true).
			Background(p.sel).
			Foreground(p.badge).
			Padding(0, 1),
		Secondary: lipgloss.NewStyle().
			Foreground(p.muted),
		Hint: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		Error: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
	}
}
