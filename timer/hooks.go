package timer

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/pokertime/pokertime/internal/pathutil"
	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

// notifyFunc is replaced in tests.
var notifyFunc = beeep.Notify

// Notify sends a desktop notification summarising a saved session.
func Notify(sess *session.Session) error {
	d, err := sess.Durations()
	if err != nil {
		return err
	}

	title := "Poker session saved"

	msg := fmt.Sprintf(
		"%s played, %s selecting",
		timeutil.FormatHuman(d.PlaySeconds),
		timeutil.FormatHuman(d.SelectSeconds),
	)

	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(pathutil.AppDir, "static", "icon.png"),
	)

	return notifyFunc(title, msg, pathToIcon)
}

// sessionCommand parses sessionCmd into an exec.Cmd. It returns nil for an
// empty command.
func sessionCommand(
	ctx context.Context,
	sessionCmd string,
	sess *session.Session,
) (*exec.Cmd, error) {
	if sessionCmd == "" {
		return nil, nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return nil, fmt.Errorf("unable to parse post_session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)

	cmd.Env = append(cmd.Environ(), "POKERTIME_SESSION_ID="+sess.ID)

	return cmd, nil
}

// RunSessionCmd executes the post-session command, exposing the saved
// session's id as POKERTIME_SESSION_ID.
func RunSessionCmd(
	ctx context.Context,
	sessionCmd string,
	sess *session.Session,
) error {
	cmd, err := sessionCommand(ctx, sessionCmd, sess)
	if err != nil || cmd == nil {
		return err
	}

	return cmd.Run()
}
