package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

type (
	// StoredSettings is a possibly partial settings object as it is kept in
	// storage. Nil fields are absent and fall back to the defaults.
	StoredSettings struct {
		Theme           *Theme                 `json:"theme,omitempty"`
		ActiveView      *View                  `json:"activeView,omitempty"`
		SplitPeriods    *bool                  `json:"splitPeriods,omitempty"`
		ShowNotes       *bool                  `json:"showNotes,omitempty"`
		ShowHandsPlayed *bool                  `json:"showHandsPlayed,omitempty"`
		Goals           *StoredGoals           `json:"goals,omitempty"`
		ListViewOptions *StoredListViewOptions `json:"listViewOptions,omitempty"`
	}

	StoredGoals struct {
		HoursPerMonth    *float64 `json:"hoursPerMonth,omitempty"`
		HandsPerMonth    *int     `json:"handsPerMonth,omitempty"`
		SessionsPerMonth *int     `json:"sessionsPerMonth,omitempty"`
	}

	StoredListViewOptions struct {
		ShowMonth              *bool      `json:"showMonth,omitempty"`
		ShowDayOfWeek          *bool      `json:"showDayOfWeek,omitempty"`
		DateRangeMode          *RangeMode `json:"dateRangeMode,omitempty"`
		CustomDateRangeDays    *int       `json:"customDateRangeDays,omitempty"`
		ShowStartTime          *bool      `json:"showStartTime,omitempty"`
		ShowEndTime            *bool      `json:"showEndTime,omitempty"`
		ShowSessionCount       *bool      `json:"showSessionCount,omitempty"`
		ShowDuration           *bool      `json:"showDuration,omitempty"`
		ShowHandsPerHour       *bool      `json:"showHandsPerHour,omitempty"`
		ShowDailyPlan          *bool      `json:"showDailyPlan,omitempty"`
		ShowDailyPlanRemaining *bool      `json:"showDailyPlanRemaining,omitempty"`
		ShowTotalPlayTime      *bool      `json:"showTotalPlayTime,omitempty"`
		ShowTotalPlanRemaining *bool      `json:"showTotalPlanRemaining,omitempty"`
	}
)

// legacyKeys maps keys of the older settings schema to the canonical ones.
var legacyKeys = map[string]string{
	"enableSplitting": "splitPeriods",
	"showHands":       "showHandsPlayed",
	"view":            "activeView",
}

var legacyGoalKeys = map[string]string{
	"hours":    "hoursPerMonth",
	"hands":    "handsPerMonth",
	"sessions": "sessionsPerMonth",
}

func pick[T any](stored *T, def T) T {
	if stored != nil {
		return *stored
	}

	return def
}

func pickValid[T interface{ Valid() bool }](stored *T, def T) T {
	if stored != nil && (*stored).Valid() {
		return *stored
	}

	return def
}

func pickNonNegative[T int | float64](stored *T, def T) T {
	if stored != nil && *stored >= 0 {
		return *stored
	}

	return def
}

// Merge produces complete settings: every field present in stored wins over
// defaults, and the goals and listViewOptions objects are merged field by
// field. Enumerations holding unknown values and negative numbers fall back
// to the default.
func Merge(defaults Settings, stored StoredSettings) Settings {
	out := Settings{
		Theme:           pickValid(stored.Theme, defaults.Theme),
		ActiveView:      pickValid(stored.ActiveView, defaults.ActiveView),
		SplitPeriods:    pick(stored.SplitPeriods, defaults.SplitPeriods),
		ShowNotes:       pick(stored.ShowNotes, defaults.ShowNotes),
		ShowHandsPlayed: pick(stored.ShowHandsPlayed, defaults.ShowHandsPlayed),
		Goals:           defaults.Goals,
		ListViewOptions: defaults.ListViewOptions,
	}

	if g := stored.Goals; g != nil {
		d := defaults.Goals

		out.Goals = Goals{
			HoursPerMonth:    pickNonNegative(g.HoursPerMonth, d.HoursPerMonth),
			HandsPerMonth:    pickNonNegative(g.HandsPerMonth, d.HandsPerMonth),
			SessionsPerMonth: pickNonNegative(g.SessionsPerMonth, d.SessionsPerMonth),
		}
	}

	if l := stored.ListViewOptions; l != nil {
		d := defaults.ListViewOptions

		out.ListViewOptions = ListViewOptions{
			ShowMonth:              pick(l.ShowMonth, d.ShowMonth),
			ShowDayOfWeek:          pick(l.ShowDayOfWeek, d.ShowDayOfWeek),
			DateRangeMode:          pickValid(l.DateRangeMode, d.DateRangeMode),
			CustomDateRangeDays:    pickNonNegative(l.CustomDateRangeDays, d.CustomDateRangeDays),
			ShowStartTime:          pick(l.ShowStartTime, d.ShowStartTime),
			ShowEndTime:            pick(l.ShowEndTime, d.ShowEndTime),
			ShowSessionCount:       pick(l.ShowSessionCount, d.ShowSessionCount),
			ShowDuration:           pick(l.ShowDuration, d.ShowDuration),
			ShowHandsPerHour:       pick(l.ShowHandsPerHour, d.ShowHandsPerHour),
			ShowDailyPlan:          pick(l.ShowDailyPlan, d.ShowDailyPlan),
			ShowDailyPlanRemaining: pick(l.ShowDailyPlanRemaining, d.ShowDailyPlanRemaining),
			ShowTotalPlayTime:      pick(l.ShowTotalPlayTime, d.ShowTotalPlayTime),
			ShowTotalPlanRemaining: pick(l.ShowTotalPlanRemaining, d.ShowTotalPlanRemaining),
		}
	}

	return out
}

func ref[T any](v T) *T {
	return &v
}

// Stored converts complete settings into a stored object with every field
// present.
func (s Settings) Stored() StoredSettings {
	l := s.ListViewOptions

	return StoredSettings{
		Theme:           ref(s.Theme),
		ActiveView:      ref(s.ActiveView),
		SplitPeriods:    ref(s.SplitPeriods),
		ShowNotes:       ref(s.ShowNotes),
		ShowHandsPlayed: ref(s.ShowHandsPlayed),
		Goals: &StoredGoals{
			HoursPerMonth:    ref(s.Goals.HoursPerMonth),
			HandsPerMonth:    ref(s.Goals.HandsPerMonth),
			SessionsPerMonth: ref(s.Goals.SessionsPerMonth),
		},
		ListViewOptions: &StoredListViewOptions{
			ShowMonth:              ref(l.ShowMonth),
			ShowDayOfWeek:          ref(l.ShowDayOfWeek),
			DateRangeMode:          ref(l.DateRangeMode),
			CustomDateRangeDays:    ref(l.CustomDateRangeDays),
			ShowStartTime:          ref(l.ShowStartTime),
			ShowEndTime:            ref(l.ShowEndTime),
			ShowSessionCount:       ref(l.ShowSessionCount),
			ShowDuration:           ref(l.ShowDuration),
			ShowHandsPerHour:       ref(l.ShowHandsPerHour),
			ShowDailyPlan:          ref(l.ShowDailyPlan),
			ShowDailyPlanRemaining: ref(l.ShowDailyPlanRemaining),
			ShowTotalPlayTime:      ref(l.ShowTotalPlayTime),
			ShowTotalPlanRemaining: ref(l.ShowTotalPlanRemaining),
		},
	}
}

func over[T any](base, patch *T) *T {
	if patch != nil {
		return patch
	}

	return base
}

// Overlay applies patch on top of base without resolving defaults. Nested
// objects are combined field by field.
func Overlay(base, patch StoredSettings) StoredSettings {
	out := StoredSettings{
		Theme:           over(base.Theme, patch.Theme),
		ActiveView:      over(base.ActiveView, patch.ActiveView),
		SplitPeriods:    over(base.SplitPeriods, patch.SplitPeriods),
		ShowNotes:       over(base.ShowNotes, patch.ShowNotes),
		ShowHandsPlayed: over(base.ShowHandsPlayed, patch.ShowHandsPlayed),
		Goals:           over(base.Goals, patch.Goals),
		ListViewOptions: over(base.ListViewOptions, patch.ListViewOptions),
	}

	if base.Goals != nil && patch.Goals != nil {
		out.Goals = &StoredGoals{
			HoursPerMonth:    over(base.Goals.HoursPerMonth, patch.Goals.HoursPerMonth),
			HandsPerMonth:    over(base.Goals.HandsPerMonth, patch.Goals.HandsPerMonth),
			SessionsPerMonth: over(base.Goals.SessionsPerMonth, patch.Goals.SessionsPerMonth),
		}
	}

	if b, p := base.ListViewOptions, patch.ListViewOptions; b != nil && p != nil {
		out.ListViewOptions = &StoredListViewOptions{
			ShowMonth:              over(b.ShowMonth, p.ShowMonth),
			ShowDayOfWeek:          over(b.ShowDayOfWeek, p.ShowDayOfWeek),
			DateRangeMode:          over(b.DateRangeMode, p.DateRangeMode),
			CustomDateRangeDays:    over(b.CustomDateRangeDays, p.CustomDateRangeDays),
			ShowStartTime:          over(b.ShowStartTime, p.ShowStartTime),
			ShowEndTime:            over(b.ShowEndTime, p.ShowEndTime),
			ShowSessionCount:       over(b.ShowSessionCount, p.ShowSessionCount),
			ShowDuration:           over(b.ShowDuration, p.ShowDuration),
			ShowHandsPerHour:       over(b.ShowHandsPerHour, p.ShowHandsPerHour),
			ShowDailyPlan:          over(b.ShowDailyPlan, p.ShowDailyPlan),
			ShowDailyPlanRemaining: over(b.ShowDailyPlanRemaining, p.ShowDailyPlanRemaining),
			ShowTotalPlayTime:      over(b.ShowTotalPlayTime, p.ShowTotalPlayTime),
			ShowTotalPlanRemaining: over(b.ShowTotalPlanRemaining, p.ShowTotalPlanRemaining),
		}
	}

	return out
}

// TranslateLegacy rewrites keys of the older settings schema in place.
// Canonical keys win when both spellings are present.
func TranslateLegacy(raw map[string]json.RawMessage) {
	for old, canonical := range legacyKeys {
		translateKey(raw, old, canonical)
	}

	goalsRaw, ok := raw["goals"]
	if !ok {
		return
	}

	var goals map[string]json.RawMessage

	if err := json.Unmarshal(goalsRaw, &goals); err != nil || goals == nil {
		return
	}

	for old, canonical := range legacyGoalKeys {
		translateKey(goals, old, canonical)
	}

	if b, err := json.Marshal(goals); err == nil {
		raw["goals"] = b
	}
}

func translateKey(raw map[string]json.RawMessage, old, canonical string) {
	v, ok := raw[old]
	if !ok {
		return
	}

	delete(raw, old)

	if _, exists := raw[canonical]; !exists {
		raw[canonical] = v
	}
}

// DecodeStored parses a stored settings document. Legacy keys are
// translated. In lenient mode, fields that fail to decode are dropped so
// that the defaults apply; in strict mode they are reported as errors along
// with unknown keys.
func DecodeStored(b []byte, strict bool) (StoredSettings, error) {
	var (
		out StoredSettings
		raw map[string]json.RawMessage
	)

	if err := json.Unmarshal(b, &raw); err != nil {
		return out, fmt.Errorf("%w: %w", errDecodeSettings, err)
	}

	TranslateLegacy(raw)

	var errs []error

	decodeInto(raw, "theme", &out.Theme, "", &errs)
	decodeInto(raw, "activeView", &out.ActiveView, "", &errs)
	decodeInto(raw, "splitPeriods", &out.SplitPeriods, "", &errs)
	decodeInto(raw, "showNotes", &out.ShowNotes, "", &errs)
	decodeInto(raw, "showHandsPlayed", &out.ShowHandsPlayed, "", &errs)

	nested := func(key string, decode func(map[string]json.RawMessage)) {
		v, ok := raw[key]
		if !ok {
			return
		}

		delete(raw, key)

		var inner map[string]json.RawMessage

		if err := json.Unmarshal(v, &inner); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}

		decode(inner)

		for k := range inner {
			raw[key+"."+k] = inner[k]
		}
	}

	nested("goals", func(m map[string]json.RawMessage) {
		g := &StoredGoals{}
		decodeInto(m, "hoursPerMonth", &g.HoursPerMonth, "goals", &errs)
		decodeInto(m, "handsPerMonth", &g.HandsPerMonth, "goals", &errs)
		decodeInto(m, "sessionsPerMonth", &g.SessionsPerMonth, "goals", &errs)
		out.Goals = g
	})

	nested("listViewOptions", func(m map[string]json.RawMessage) {
		l := &StoredListViewOptions{}
		p := "listViewOptions"
		decodeInto(m, "showMonth", &l.ShowMonth, p, &errs)
		decodeInto(m, "showDayOfWeek", &l.ShowDayOfWeek, p, &errs)
		decodeInto(m, "dateRangeMode", &l.DateRangeMode, p, &errs)
		decodeInto(m, "customDateRangeDays", &l.CustomDateRangeDays, p, &errs)
		decodeInto(m, "showStartTime", &l.ShowStartTime, p, &errs)
		decodeInto(m, "showEndTime", &l.ShowEndTime, p, &errs)
		decodeInto(m, "showSessionCount", &l.ShowSessionCount, p, &errs)
		decodeInto(m, "showDuration", &l.ShowDuration, p, &errs)
		decodeInto(m, "showHandsPerHour", &l.ShowHandsPerHour, p, &errs)
		decodeInto(m, "showDailyPlan", &l.ShowDailyPlan, p, &errs)
		decodeInto(m, "showDailyPlanRemaining", &l.ShowDailyPlanRemaining, p, &errs)
		decodeInto(m, "showTotalPlayTime", &l.ShowTotalPlayTime, p, &errs)
		decodeInto(m, "showTotalPlanRemaining", &l.ShowTotalPlanRemaining, p, &errs)
		out.ListViewOptions = l
	})

	if !strict {
		for _, err := range errs {
			slog.Warn("ignoring stored setting", "error", err)
		}

		return out, nil
	}

	for k := range raw {
		errs = append(errs, fmt.Errorf("%w: %s", errUnknownSetting, k))
	}

	if len(errs) > 0 {
		return out, fmt.Errorf("%w: %w", errDecodeSettings, errors.Join(errs...))
	}

	return out, validateStored(out)
}

func decodeInto[T any](
	m map[string]json.RawMessage,
	key string,
	dst **T,
	prefix string,
	errs *[]error,
) {
	v, ok := m[key]
	if !ok {
		return
	}

	delete(m, key)

	if string(v) == "null" {
		return
	}

	if prefix != "" {
		key = prefix + "." + key
	}

	var val T

	if err := json.Unmarshal(v, &val); err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}

	*dst = &val
}

func validateStored(s StoredSettings) error {
	if s.Theme != nil && !s.Theme.Valid() {
		return fmt.Errorf("%w: theme %q", errInvalidSetting, *s.Theme)
	}

	if s.ActiveView != nil && !s.ActiveView.Valid() {
		return fmt.Errorf("%w: activeView %q", errInvalidSetting, *s.ActiveView)
	}

	if g := s.Goals; g != nil {
		if (g.HoursPerMonth != nil && *g.HoursPerMonth < 0) ||
			(g.HandsPerMonth != nil && *g.HandsPerMonth < 0) ||
			(g.SessionsPerMonth != nil && *g.SessionsPerMonth < 0) {
			return fmt.Errorf("%w: goals cannot be negative", errInvalidSetting)
		}
	}

	if l := s.ListViewOptions; l != nil {
		if l.DateRangeMode != nil && !l.DateRangeMode.Valid() {
			return fmt.Errorf(
				"%w: listViewOptions.dateRangeMode %q",
				errInvalidSetting,
				*l.DateRangeMode,
			)
		}

		if l.CustomDateRangeDays != nil && *l.CustomDateRangeDays < 0 {
			return fmt.Errorf(
				"%w: listViewOptions.customDateRangeDays cannot be negative",
				errInvalidSetting,
			)
		}
	}

	return nil
}
