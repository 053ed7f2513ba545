package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by WithEnv.
const EnvPrefix = "POKERTIME_"

// envOptions mirrors Options with pointer fields so that unset variables
// leave the file values alone.
type envOptions struct {
	DBPath         *string `env:"DB_PATH"`
	LogLevel       *string `env:"LOG_LEVEL"`
	Timezone       *string `env:"TIMEZONE"`
	WeekStart      *string `env:"WEEK_START"`
	PostSessionCmd *string `env:"POST_SESSION_CMD"`
	ExportPath     *string `env:"EXPORT_PATH"`
	Notify         *bool   `env:"NOTIFY"`
}

// WithEnv returns an Option that applies POKERTIME_* environment overrides.
func WithEnv() Option {
	return withEnv(nil)
}

func withEnv(environment map[string]string) Option {
	return func(o *Options) error {
		var raw envOptions

		err := env.ParseWithOptions(&raw, env.Options{
			Prefix:      EnvPrefix,
			Environment: environment,
		})
		if err != nil {
			return fmt.Errorf("environment variables are invalid: %w", err)
		}

		setIf(&o.DBPath, raw.DBPath)
		setIf(&o.LogLevel, raw.LogLevel)
		setIf(&o.Timezone, raw.Timezone)
		setIf(&o.WeekStart, raw.WeekStart)
		setIf(&o.PostSessionCmd, raw.PostSessionCmd)
		setIf(&o.ExportPath, raw.ExportPath)
		setIf(&o.Notify, raw.Notify)

		return nil
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
