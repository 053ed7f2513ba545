package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

var (
	errParseTime  = errors.New("unable to understand the given time")
	errFutureTime = errors.New("the given time is in the future")
)

// parseTime interprets a human date such as "yesterday 9pm" or
// "2024-03-01" relative to now in loc.
func parseTime(s string, now time.Time, loc *time.Location) (time.Time, error) {
	cfg := &dps.Configuration{
		CurrentTime:         now.In(loc),
		DefaultTimezone:     loc,
		PreferredDateSource: dps.Past,
	}

	dt, err := dps.Parse(cfg, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", errParseTime, s, err)
	}

	if dt.Time.IsZero() {
		return time.Time{}, fmt.Errorf("%w %q", errParseTime, s)
	}

	return dt.Time, nil
}

// referenceTime returns the instant given by the named flag, or now when the
// flag is unset.
func (a *application) referenceTime(value string) (time.Time, error) {
	now := a.now()

	if value == "" {
		return now, nil
	}

	t, err := parseTime(value, now, a.opts.Location)
	if err != nil {
		return time.Time{}, err
	}

	if t.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s", errFutureTime, t.Format(time.RFC3339))
	}

	return t, nil
}
