package timer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
)

// TickMsg carries the display counter from the machine's tick.
type TickMsg int64

// Outcome is how a tracking run ended.
type Outcome int

const (
	Pending Outcome = iota
	Saved
	Abandoned
)

// Model is the bubbletea model of the live tracking screen.
type Model struct {
	machine    *Machine
	saved      *session.Session
	err        error
	style      Style
	help       help.Model
	outcome    Outcome
	split      bool
	confirming bool
}

// NewModel returns a tracking model that drives m.
func NewModel(m *Machine, settings config.Settings) *Model {
	return &Model{
		machine: m,
		style:   NewStyle(settings.Theme),
		help:    help.New(),
		split:   settings.SplitPeriods,
	}
}

// Result returns the saved session, if any, and how the run ended.
func (t *Model) Result() (*session.Session, Outcome) {
	return t.saved, t.outcome
}

func (t *Model) Init() tea.Cmd {
	return nil
}

func (t *Model) switchTo(p session.PeriodType) {
	err := t.machine.SwitchPeriod(p)
	if err != nil {
		t.err = err
		return
	}

	t.err = nil
}

func (t *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if t.confirming {
		switch {
		case key.Matches(msg, defaultKeymap.quit):
			t.machine.Abandon()
			t.outcome = Abandoned

			return t, tea.Quit

		default:
			t.confirming = false

			return t, nil
		}
	}

	switch {
	case key.Matches(msg, defaultKeymap.play):
		if t.split {
			t.switchTo(session.Play)
		}

	case key.Matches(msg, defaultKeymap.sel):
		if t.split {
			t.switchTo(session.Select)
		}

	case key.Matches(msg, defaultKeymap.stop):
		saved, err := t.machine.Stop()
		if err != nil {
			// the machine is still running, so stopping can be retried
			t.err = err
			return t, nil
		}

		t.saved = saved
		t.outcome = Saved

		return t, tea.Quit

	case key.Matches(msg, defaultKeymap.quit):
		t.confirming = true
	}

	return t, nil
}

func (t *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		// the view reads the counter from the machine
		return t, nil

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.help.Width = msg.Width

		return t, nil

	case error:
		slog.Error("tracking failed", "error", msg)

		t.err = msg

		return t, nil
	}

	return t, nil
}

// Track starts a session, backdated to at unless at is zero, and runs the
// tracking screen until the session is stopped or discarded.
func Track(
	ctx context.Context,
	repo Appender,
	settings config.Settings,
	at time.Time,
	opts ...tea.ProgramOption,
) (*session.Session, Outcome, error) {
	var p *tea.Program

	machine := New(repo, WithTickFunc(func(n int64) {
		// Send blocks while the event loop is inside Stop.
		go p.Send(TickMsg(n))
	}))

	model := NewModel(machine, settings)

	p = tea.NewProgram(model, append(opts, tea.WithContext(ctx))...)

	var err error

	if at.IsZero() {
		_, err = machine.Start(ctx)
	} else {
		_, err = machine.StartAt(ctx, at)
	}

	if err != nil {
		return nil, Pending, err
	}

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		machine.Abandon()
		return nil, Pending, err
	}

	if m, ok := final.(*Model); ok {
		model = m
	}

	saved, outcome := model.Result()

	if outcome == Pending {
		// the program ended without a decision, e.g. on a signal
		machine.Abandon()

		outcome = Abandoned
	}

	return saved, outcome, nil
}
