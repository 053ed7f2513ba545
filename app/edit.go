package app

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/ui"
	"github.com/pokertime/pokertime/report"
	"github.com/pokertime/pokertime/repository"
	"github.com/pokertime/pokertime/stats"
	"github.com/pokertime/pokertime/timer"
)

var errMissingID = errors.New("please provide the id of the session to edit")

func emptyPatch(p repository.Patch) bool {
	return p.Notes == nil && p.HandsPlayed == nil
}

// applyPatch returns a copy of sess with the patch applied.
func applyPatch(sess *session.Session, p repository.Patch) *session.Session {
	c := sess.Clone()

	if p.Notes != nil {
		c.Notes = *p.Notes
	}

	if p.HandsPlayed != nil {
		c.HandsPlayed = *p.HandsPlayed
	}

	return c
}

// printSession prints a single session the way the list view does.
func (a *application) printSession(sess *session.Session, settings config.Settings) {
	settings.ListViewOptions.DateRangeMode = config.RangeAll
	settings.ShowNotes = true

	list := stats.ListRows(
		[]session.Session{*sess},
		settings,
		a.now(),
		a.statsOptions(),
	)

	ui.PrintTable(config.Stdout, stats.ListTable(list, settings))
}

// confirm asks the user to press ENTER before a change is applied.
func confirm(msg string) {
	warning := pterm.Warning.Sprint(msg + ". Press ENTER to proceed")

	fmt.Fprint(config.Stdout, warning)

	reader := bufio.NewReader(config.Stdin)

	_, _ = reader.ReadString('\n')
}

// editAction updates the notes or hand count of a recorded session. Without
// --notes or --hands, the details form is shown pre-filled.
func (a *application) editAction(ctx *cli.Context) error {
	id := ctx.Args().First()
	if id == "" {
		return errMissingID
	}

	repo, err := a.repository()
	if err != nil {
		return err
	}

	settings, err := a.settings()
	if err != nil {
		return err
	}

	sess, err := repo.Get(id)
	if err != nil {
		return err
	}

	var patch repository.Patch

	if ctx.IsSet("notes") {
		notes := ctx.String("notes")
		patch.Notes = &notes
	}

	if ctx.IsSet("hands") {
		hands := ctx.Int("hands")
		patch.HandsPlayed = &hands
	}

	if emptyPatch(patch) {
		form := settings
		form.ShowNotes = true
		form.ShowHandsPlayed = true

		patch, err = timer.AskDetails(form, timer.DetailsPrompt{
			Notes: sess.Notes,
			Hands: strconv.Itoa(sess.HandsPlayed),
		})
		if err != nil {
			return err
		}
	} else if !ctx.Bool("yes") {
		a.printSession(applyPatch(sess, patch), settings)
		confirm("The session above will be updated")
	}

	if emptyPatch(patch) {
		pterm.Info.Println("Nothing to update")
		return nil
	}

	if _, err := repo.Update(id, patch); err != nil {
		return err
	}

	report.SessionUpdated(id)

	return nil
}
