package timer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
	"github.com/pokertime/pokertime/repository"
)

// DetailsPrompt holds the user's responses to the post-session form.
type DetailsPrompt struct {
	Notes string
	Hands string
}

// parseHands converts the hands field into a count. Empty means unset.
func parseHands(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, errInvalidHands
	}

	return &n, nil
}

func validateHands(s string) error {
	_, err := parseHands(s)
	return err
}

// Patch converts the responses into a repository patch. Empty fields are
// left out.
func (d DetailsPrompt) Patch() (repository.Patch, error) {
	var patch repository.Patch

	if notes := strings.TrimSpace(d.Notes); notes != "" {
		patch.Notes = &notes
	}

	hands, err := parseHands(d.Hands)
	if err != nil {
		return patch, err
	}

	patch.HandsPlayed = hands

	return patch, nil
}

// detailsForm builds the post-session form. It returns nil when the
// settings hide both notes and hands.
func detailsForm(
	settings config.Settings,
	d *DetailsPrompt,
) *huh.Form {
	var fields []huh.Field

	if settings.ShowHandsPlayed {
		fields = append(fields, huh.NewInput().
			Title("Hands played").
			Placeholder("0").
			Validate(validateHands).
			Value(&d.Hands))
	}

	if settings.ShowNotes {
		fields = append(fields, huh.NewText().
			Title("Notes").
			Placeholder("Table dynamics, leaks, tilt...").
			CharLimit(2000).
			Value(&d.Notes))
	}

	if len(fields) == 0 {
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...))
}

// PromptDetails prints a summary of the saved session and asks for its
// notes and hand count as the settings allow.
func PromptDetails(
	sess *session.Session,
	settings config.Settings,
) (repository.Patch, error) {
	printSummary(sess)

	return AskDetails(settings, DetailsPrompt{})
}

// AskDetails runs the details form pre-filled with initial. It returns an
// empty patch when the settings hide every field.
func AskDetails(
	settings config.Settings,
	initial DetailsPrompt,
) (repository.Patch, error) {
	d := initial

	form := detailsForm(settings, &d)
	if form == nil {
		return repository.Patch{}, nil
	}

	if err := form.Run(); err != nil {
		return repository.Patch{}, fmt.Errorf("form interaction failed: %w", err)
	}

	return d.Patch()
}

func printSummary(sess *session.Session) {
	d, err := sess.Durations()
	if err != nil {
		return
	}

	pterm.Success.Printfln(
		"Session saved: %s total (play %s, select %s)",
		timeutil.FormatHuman(d.TotalSeconds),
		timeutil.FormatHuman(d.PlaySeconds),
		timeutil.FormatHuman(d.SelectSeconds),
	)
}
