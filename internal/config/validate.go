package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pokertime/pokertime/internal/timeutil"
)

// Validate checks the options and resolves Location and Weekday.
func (o *Options) Validate() error {
	loc, err := loadLocation(o.Timezone)
	if err != nil {
		return err
	}

	o.Location = loc

	if strings.TrimSpace(o.WeekStart) == "" {
		o.WeekStart = defaultWeekStart
	}

	day, err := timeutil.ParseWeekday(o.WeekStart)
	if err != nil {
		return fmt.Errorf("%w: week_start: %w", errInvalidOption, err)
	}

	if day != time.Sunday && day != time.Monday {
		return fmt.Errorf(
			"%w: week_start must be sunday or monday, got %s",
			errInvalidOption,
			o.WeekStart,
		)
	}

	o.Weekday = day

	if o.LogLevel == "" {
		o.LogLevel = defaultLogLevel
	}

	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return fmt.Errorf("%w: log_level %q", errInvalidOption, o.LogLevel)
	}

	return nil
}

func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone: %w", errInvalidOption, err)
	}

	return loc, nil
}
