package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/report"
)

var errSettingArgs = errors.New("usage: settings set <key> <value>")

// settingsShowAction prints the merged settings as YAML or JSON.
func (a *application) settingsShowAction(ctx *cli.Context) error {
	settings, err := a.settings()
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(settings)
	}

	b, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(config.Stdout, string(b))

	return err
}

// settingsSetAction changes one setting. Only the changed field is added to
// the stored document.
func (a *application) settingsSetAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errSettingArgs
	}

	patch, err := config.ParseSetting(ctx.Args().Get(0), ctx.Args().Get(1))
	if errors.Is(err, config.ErrUnknownSetting) {
		return fmt.Errorf(
			"%w\navailable keys: %s",
			err,
			strings.Join(config.SettingKeys, ", "),
		)
	}

	if err != nil {
		return err
	}

	s, err := a.settingsStore()
	if err != nil {
		return err
	}

	if _, err := s.Update(patch); err != nil {
		return err
	}

	report.SettingsUpdated()

	return nil
}

func (a *application) settingsResetAction(_ *cli.Context) error {
	s, err := a.settingsStore()
	if err != nil {
		return err
	}

	if _, err := s.Reset(); err != nil {
		return err
	}

	report.SettingsUpdated()

	return nil
}
