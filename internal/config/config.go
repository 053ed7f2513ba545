// Package config holds the user settings that shape the views, the merge
// rules that rebuild them from storage, and the application options read
// from the config file, the environment and the command line.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

type (
	// Options holds application settings that are not part of the user
	// Settings document: file locations, locale and hooks.
	Options struct {
		// Location is resolved from Timezone by New.
		Location *time.Location `mapstructure:"-"`

		ConfigPath     string `mapstructure:"-"`
		DBPath         string `mapstructure:"db_path"`
		LogLevel       string `mapstructure:"log_level"`
		Timezone       string `mapstructure:"timezone"`
		WeekStart      string `mapstructure:"week_start"`
		PostSessionCmd string `mapstructure:"post_session_cmd"`
		ExportPath     string `mapstructure:"export_path"`
		Notify         bool   `mapstructure:"notify"`

		// Weekday is resolved from WeekStart by New.
		Weekday time.Weekday `mapstructure:"-"`
	}

	// Option is a function that modifies Options
	Option func(*Options) error
)

const Version = "v0.3.0"

const (
	keyDBPath         = "db_path"
	keyLogLevel       = "log_level"
	keyTimezone       = "timezone"
	keyWeekStart      = "week_start"
	keyNotify         = "notify"
	keyPostSessionCmd = "post_session_cmd"
	keyExportPath     = "export_path"
)

const (
	defaultLogLevel  = "info"
	defaultWeekStart = "monday"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() *Options {
	return &Options{
		LogLevel:  defaultLogLevel,
		WeekStart: defaultWeekStart,
		Notify:    true,
		Location:  time.Local,
		Weekday:   time.Monday,
	}
}

// New creates Options with default values, applies opts in order and
// validates the result.
func New(opts ...Option) (*Options, error) {
	o := DefaultOptions()

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("%w: %w", errConfigOption, err)
		}
	}

	if err := o.Validate(); err != nil {
		return nil, err
	}

	return o, nil
}

// SlogLevel maps LogLevel to a slog level.
func (o *Options) SlogLevel() slog.Level {
	var l slog.Level

	if err := l.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return l
}
