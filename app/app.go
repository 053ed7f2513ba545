package app

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/samber/do/v2"
	"github.com/urfave/cli/v2"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/logging"
	"github.com/pokertime/pokertime/internal/pathutil"
)

const (
	envNoColor          = "NO_COLOR"
	envPokertimeNoColor = "POKERTIME_NO_COLOR"
)

// application is the per-process context shared by every command.
type application struct {
	opts     *config.Options
	injector do.Injector
	logFile  io.Closer
	now      func() time.Time
	// load resolves the options and the dependency graph
	load func(ctx *cli.Context) error
}

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// loadFromDisk reads the options from the config file, the environment and the
// command line, then opens the log and builds the dependency graph.
func (a *application) loadFromDisk(ctx *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	opts, err := config.New(
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithEnv(),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	a.opts = opts
	a.logFile = logging.Init(pathutil.LogFilePath(), opts.SlogLevel())
	a.injector = newInjector(opts)

	return nil
}

func (a *application) beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if POKERTIME_NO_COLOR is set
	if _, exists := os.LookupEnv(envPokertimeNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := a.load(ctx); err != nil {
		return err
	}

	slog.DebugContext(ctx.Context, "options loaded",
		slog.String("config", a.opts.ConfigPath),
		slog.String("timezone", a.opts.Location.String()),
		slog.String("week_start", a.opts.Weekday.String()),
	)

	return nil
}

func (a *application) afterAction(ctx *cli.Context) error {
	if a.injector != nil {
		if report := a.injector.Shutdown(); report != nil && !report.Succeed {
			slog.WarnContext(ctx.Context, "shutdown failed", slog.String("error", report.Error()))
		}
	}

	slog.InfoContext(ctx.Context, "exiting pokertime")

	if a.logFile != nil {
		return a.logFile.Close()
	}

	return nil
}

func newApplication() *application {
	a := &application{now: time.Now}
	a.load = a.loadFromDisk

	return a
}

// Get retrieves the pokertime app instance.
func Get() *cli.App {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	return newApplication().cliApp()
}

func (a *application) cliApp() *cli.App {
	return &cli.App{
		Name: "pokertime",
		Usage: `
		Pokertime tracks the time you spend at the poker tables, split into
		playing and table selection, and reports where it goes.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Writer:               config.Stdout,
		ErrWriter:            config.Stderr,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start tracking a session (the default command)",
				Flags:  []cli.Flag{startAtFlag},
				Action: a.startAction,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List recorded sessions",
				Flags:   []cli.Flag{rangeFlag, daysFlag, atFlag, jsonFlag},
				Action:  a.listAction,
			},
			{
				Name:    "calendar",
				Aliases: []string{"cal"},
				Usage:   "Show a month of sessions as a calendar",
				Flags:   []cli.Flag{monthFlag, jsonFlag},
				Action:  a.calendarAction,
			},
			{
				Name:   "stats",
				Usage:  "Report daily play time, the play/select ratio and goal progress",
				Flags:  []cli.Flag{windowFlag, atFlag, jsonFlag},
				Action: a.statsAction,
			},
			{
				Name:      "edit",
				Usage:     "Edit the notes or hand count of a recorded session",
				ArgsUsage: "[--notes <text>] [--hands <n>] <id>",
				Flags:     []cli.Flag{notesFlag, handsFlag, yesFlag},
				Action:    a.editAction,
			},
			{
				Name:   "export",
				Usage:  "Export all sessions to an XLSX spreadsheet",
				Flags:  []cli.Flag{outFlag, jsonFlag},
				Action: a.exportAction,
			},
			{
				Name:  "settings",
				Usage: "Show or change the display settings",
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Print the effective settings",
						Flags:  []cli.Flag{jsonFlag},
						Action: a.settingsShowAction,
					},
					{
						Name:      "set",
						Usage:     "Change a setting (e.g. 'goals.hoursPerMonth 80')",
						ArgsUsage: "<key> <value>",
						Action:    a.settingsSetAction,
					},
					{
						Name:   "reset",
						Usage:  "Restore the default settings",
						Action: a.settingsResetAction,
					},
				},
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: a.editConfigAction,
			},
		},
		Flags:  globalFlags(),
		Action: a.startAction,
		Before: a.beforeAction,
		After:  a.afterAction,
	}
}
