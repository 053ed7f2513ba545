package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

func (t *Model) badge(p session.PeriodType) string {
	switch p {
	case session.Play:
		return t.style.Play.Render("PLAY")
	case session.Select:
		return t.style.Select.Render("SELECT")
	}

	return ""
}

func (t *Model) splitView() string {
	play, sel := t.machine.Split()

	return t.style.Secondary.Render(fmt.Sprintf(
		"Play %s  ·  Select %s",
		timeutil.FormatClock(play),
		timeutil.FormatClock(sel),
	))
}

func (t *Model) helpView() string {
	if t.confirming {
		return t.help.ShortHelpView([]key.Binding{
			defaultKeymap.quit,
			defaultKeymap.cancel,
		})
	}

	return t.help.ShortHelpView(defaultKeymap.bindings(t.split))
}

func (t *Model) trackingView() string {
	var s strings.Builder

	current := t.machine.Current()

	s.WriteString(t.style.Title.Render("Poker session"))

	if current != nil {
		s.WriteString(" " + t.badge(current.CurrentPeriod().Type))
		s.WriteString(t.style.Hint.Render(
			"  since " + current.OverallStartTime.Format("15:04"),
		))
	}

	s.WriteString("\n")
	s.WriteString(t.style.Clock.Render(timeutil.FormatClock(t.machine.Elapsed())))
	s.WriteString("\n")

	if t.split {
		s.WriteString(t.splitView() + "\n")
	}

	if t.confirming {
		s.WriteString("\n" + t.style.Error.Render(
			"Discard this session? Press q again to discard it.",
		) + "\n")
	}

	if t.err != nil {
		s.WriteString("\n" + t.style.Error.Render(t.err.Error()) + "\n")
	}

	s.WriteString("\n" + t.helpView())

	return s.String()
}

func (t *Model) View() string {
	if t.outcome != Pending {
		return ""
	}

	return t.style.Base.Render(t.trackingView())
}
