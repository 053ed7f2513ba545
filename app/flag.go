package app

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pokertime/pokertime/internal/config"
)

const defaultWindowDays = 30

var (
	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the session database",
	}

	timezoneFlag = &cli.StringFlag{
		Name:    "timezone",
		Aliases: []string{"tz"},
		Usage:   "IANA time zone used to group sessions by day (default: local)",
	}

	weekStartFlag = &cli.StringFlag{
		Name:  "week-start",
		Usage: "First day of the week: sunday or monday (default: monday)",
	}

	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn or error (default: info)",
	}

	noNotifyFlag = &cli.BoolFlag{
		Name:    "no-notify",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is saved",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	atFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "Reference time (e.g. '2 weeks ago', '2024-03-01'). Defaults to now",
	}

	startAtFlag = &cli.StringFlag{
		Name:  "at",
		Usage: "Start the session in the past (e.g. '20 mins ago')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	rangeFlag = &cli.StringFlag{
		Name:    "range",
		Aliases: []string{"r"},
		Usage:   "Date range: all, week, month or custom (default: from settings)",
	}

	daysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Number of days covered by the custom range",
	}

	windowFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Number of days covered by the daily play chart",
		Value: defaultWindowDays,
	}

	monthFlag = &cli.StringFlag{
		Name:    "month",
		Aliases: []string{"m"},
		Usage:   "Month to display (e.g. '2024-03', 'last month'). Defaults to the current month",
	}

	notesFlag = &cli.StringFlag{
		Name:    "notes",
		Aliases: []string{"n"},
		Usage:   "Replace the session notes",
	}

	handsFlag = &cli.IntFlag{
		Name:  "hands",
		Usage: "Set the number of hands played",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Apply the change without asking for confirmation",
	}

	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Destination of the spreadsheet (default: export_path or the documents directory)",
	}
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		dbFlag,
		timezoneFlag,
		weekStartFlag,
		logLevelFlag,
		noNotifyFlag,
		noColorFlag,
	}
}

func rangeModes() string {
	modes := make([]string, 0, len(config.RangeModes))
	for _, m := range config.RangeModes {
		modes = append(modes, string(m))
	}

	return strings.Join(modes, ", ")
}
