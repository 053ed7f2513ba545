package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertime/pokertime/internal/config"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(config.ThemeDark) })

	testCases := []struct {
		theme config.Theme
		want  palette
	}{
		{config.ThemeLight, lightPalette},
		{config.ThemeDark, darkPalette},
		{config.Theme("neon"), darkPalette},
	}

	for _, tc := range testCases {
		t.Run(string(tc.theme), func(t *testing.T) {
			SetTheme(tc.theme)

			assert.Equal(t, tc.want, active)
			assert.Equal(t, tc.want.play.Sprint("1h"), Green("1h"))
			assert.Equal(t, tc.want.highlight.Sprint("12"), Highlight("12"))
		})
	}
}

func TestPrintTable(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	var buf bytes.Buffer

	PrintTable(&buf, [][]string{
		{"DATE", "PLAY"},
		{"05 2024", "01:30:00"},
	})

	out := buf.String()
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "01:30:00")

	str, err := Table(nil)
	require.NoError(t, err)
	assert.Empty(t, str)
}
