package timer

import (
	"context"
	"os/exec"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func startedModel(t *testing.T, settings config.Settings) (*Model, *fakeClock) {
	t.Helper()

	m, clock, _ := newMachine(t)

	_, err := m.Start(context.Background())
	require.NoError(t, err)

	return NewModel(m, settings), clock
}

func TestModelSwitchAndStop(t *testing.T) {
	model, clock := startedModel(t, config.DefaultSettings())

	clock.Advance(10 * time.Minute)
	model.Update(runes("s"))
	assert.Equal(t, session.Select, model.machine.CurrentPeriodType())

	clock.Advance(5 * time.Minute)
	model.Update(runes("p"))
	assert.Equal(t, session.Play, model.machine.CurrentPeriodType())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	saved, outcome := model.Result()
	assert.Equal(t, Saved, outcome)
	require.NotNil(t, saved)
	assert.Len(t, saved.Periods, 3)
	assert.Empty(t, model.View())
}

func TestModelIgnoresSplitKeysWhenSplittingDisabled(t *testing.T) {
	settings := config.DefaultSettings()
	settings.SplitPeriods = false

	model, _ := startedModel(t, settings)

	model.Update(runes("s"))
	assert.Equal(t, session.Play, model.machine.CurrentPeriodType())

	model.machine.Abandon()
}

func TestModelQuitNeedsConfirmation(t *testing.T) {
	model, _ := startedModel(t, config.DefaultSettings())

	_, cmd := model.Update(runes("q"))
	assert.Nil(t, cmd)
	assert.True(t, model.confirming)
	assert.Equal(t, Running, model.machine.State())
	assert.Contains(t, model.View(), "Discard this session?")

	// any other key cancels
	model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, model.confirming)

	model.Update(runes("q"))
	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	saved, outcome := model.Result()
	assert.Nil(t, saved)
	assert.Equal(t, Abandoned, outcome)
	assert.Equal(t, Idle, model.machine.State())
}

func TestModelViewShowsClockAndBadge(t *testing.T) {
	model, clock := startedModel(t, config.DefaultSettings())

	clock.Advance(75 * time.Second)

	view := model.View()
	assert.Contains(t, view, "PLAY")
	assert.Contains(t, view, "00:00:00")
	assert.Contains(t, view, "Play 00:01:15")

	model.machine.Abandon()
}

func TestDetailsPromptPatch(t *testing.T) {
	patch, err := DetailsPrompt{Notes: "  tough table ", Hands: "120"}.Patch()
	require.NoError(t, err)
	require.NotNil(t, patch.Notes)
	assert.Equal(t, "tough table", *patch.Notes)
	assert.Equal(t, 120, *patch.HandsPlayed)

	patch, err = DetailsPrompt{}.Patch()
	require.NoError(t, err)
	assert.Nil(t, patch.Notes)
	assert.Nil(t, patch.HandsPlayed)

	_, err = DetailsPrompt{Hands: "-3"}.Patch()
	assert.ErrorIs(t, err, errInvalidHands)

	_, err = DetailsPrompt{Hands: "lots"}.Patch()
	assert.ErrorIs(t, err, errInvalidHands)
}

func TestDetailsFormHonoursSettings(t *testing.T) {
	settings := config.DefaultSettings()
	settings.ShowNotes = false
	settings.ShowHandsPlayed = false

	assert.Nil(t, detailsForm(settings, &DetailsPrompt{}))

	settings.ShowNotes = true
	assert.NotNil(t, detailsForm(settings, &DetailsPrompt{}))
}

func TestSessionCommand(t *testing.T) {
	sess := session.New(t0)

	cmd, err := sessionCommand(context.Background(), "", sess)
	require.NoError(t, err)
	assert.Nil(t, cmd)

	cmd, err = sessionCommand(context.Background(), `notify-send "session saved"`, sess)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"notify-send", "session saved"}, cmd.Args)
	assert.Contains(t, cmd.Env, "POKERTIME_SESSION_ID="+sess.ID)

	_, err = sessionCommand(context.Background(), `echo "unterminated`, sess)
	assert.Error(t, err)
}

func TestRunSessionCmd(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true(1) not available")
	}

	assert.NoError(t, RunSessionCmd(context.Background(), "true", session.New(t0)))
}

func TestNotify(t *testing.T) {
	var gotTitle, gotMsg string

	orig := notifyFunc
	notifyFunc = func(title, msg string, _ string) error {
		gotTitle, gotMsg = title, msg
		return nil
	}

	t.Cleanup(func() { notifyFunc = orig })

	sess := session.New(t0)
	end := t0.Add(3*time.Hour + 20*time.Minute)
	sess.Periods[0].EndTime = &end
	sess.OverallEndTime = &end

	require.NoError(t, Notify(sess))
	assert.Equal(t, "Poker session saved", gotTitle)
	assert.Equal(t, "3h 20m played, 0s selecting", gotMsg)
}
