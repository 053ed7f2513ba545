package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// WithViperConfig returns an Option that loads options from the YAML file at
// configPath. A missing file is created with the defaults.
func WithViperConfig(configPath string) Option {
	return func(o *Options) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, o)

		o.ConfigPath = configPath

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, o)
		}

		var notFound viper.ConfigFileNotFoundError

		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return fmt.Errorf("%w: %w", errReadConfig, err)
		}

		if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
			return fmt.Errorf("%w: %w", errWriteConfig, err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("%w: %w", errWriteConfig, err)
		}

		return loadViperConfig(v, o)
	}
}

// setupViper configures Viper with defaults taken from the current options.
func setupViper(v *viper.Viper, o *Options) {
	v.SetDefault(keyDBPath, o.DBPath)
	v.SetDefault(keyLogLevel, o.LogLevel)
	v.SetDefault(keyTimezone, o.Timezone)
	v.SetDefault(keyWeekStart, o.WeekStart)
	v.SetDefault(keyNotify, o.Notify)
	v.SetDefault(keyPostSessionCmd, o.PostSessionCmd)
	v.SetDefault(keyExportPath, o.ExportPath)
}

// loadViperConfig loads configuration from Viper into the Options struct.
func loadViperConfig(v *viper.Viper, o *Options) error {
	if err := v.Unmarshal(o); err != nil {
		return fmt.Errorf("%w: %w", errReadConfig, err)
	}

	return nil
}
