package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	DBPath    *string
	Timezone  *string
	WeekStart *string
	LogLevel  *string
	Notify    *bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Only flags that were explicitly set override earlier sources.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(o *Options) error {
		var opts CLIOptions

		if ctx.IsSet("db") {
			opts.DBPath = ref(ctx.String("db"))
		}

		if ctx.IsSet("timezone") {
			opts.Timezone = ref(ctx.String("timezone"))
		}

		if ctx.IsSet("week-start") {
			opts.WeekStart = ref(ctx.String("week-start"))
		}

		if ctx.IsSet("log-level") {
			opts.LogLevel = ref(ctx.String("log-level"))
		}

		if ctx.IsSet("no-notify") {
			opts.Notify = ref(!ctx.Bool("no-notify"))
		}

		applyCLIOptions(o, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(o *Options, opts CLIOptions) {
	setIf(&o.DBPath, opts.DBPath)
	setIf(&o.Timezone, opts.Timezone)
	setIf(&o.WeekStart, opts.WeekStart)
	setIf(&o.LogLevel, opts.LogLevel)
	setIf(&o.Notify, opts.Notify)
}
