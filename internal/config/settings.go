package config

// Theme is the colour theme used by the presentation layer.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeDark, ThemeLight:
		return true
	}

	return false
}

// View is the default view shown for the session history.
type View string

const (
	ViewList     View = "list"
	ViewCalendar View = "calendar"
	ViewCustom   View = "custom"
)

func (v View) Valid() bool {
	switch v {
	case ViewList, ViewCalendar, ViewCustom:
		return true
	}

	return false
}

// RangeMode selects which sessions the list view shows.
type RangeMode string

const (
	RangeAll    RangeMode = "all"
	RangeWeek   RangeMode = "week"
	RangeMonth  RangeMode = "month"
	RangeCustom RangeMode = "custom"
)

// RangeModes lists every range mode.
var RangeModes = []RangeMode{RangeAll, RangeWeek, RangeMonth, RangeCustom}

func (r RangeMode) Valid() bool {
	switch r {
	case RangeAll, RangeWeek, RangeMonth, RangeCustom:
		return true
	}

	return false
}

type (
	// Settings is the complete user configuration. It is always the result
	// of merging the stored settings with the defaults.
	Settings struct {
		Theme           Theme           `json:"theme"           yaml:"theme"`
		ActiveView      View            `json:"activeView"      yaml:"activeView"`
		Goals           Goals           `json:"goals"           yaml:"goals"`
		ListViewOptions ListViewOptions `json:"listViewOptions" yaml:"listViewOptions"`
		SplitPeriods    bool            `json:"splitPeriods"    yaml:"splitPeriods"`
		ShowNotes       bool            `json:"showNotes"       yaml:"showNotes"`
		ShowHandsPlayed bool            `json:"showHandsPlayed" yaml:"showHandsPlayed"`
	}

	// Goals are monthly targets. Zero means no goal.
	Goals struct {
		HoursPerMonth    float64 `json:"hoursPerMonth"    yaml:"hoursPerMonth"`
		HandsPerMonth    int     `json:"handsPerMonth"    yaml:"handsPerMonth"`
		SessionsPerMonth int     `json:"sessionsPerMonth" yaml:"sessionsPerMonth"`
	}

	// ListViewOptions controls the list view columns and date filter.
	ListViewOptions struct {
		DateRangeMode          RangeMode `json:"dateRangeMode"          yaml:"dateRangeMode"`
		CustomDateRangeDays    int       `json:"customDateRangeDays"    yaml:"customDateRangeDays"`
		ShowMonth              bool      `json:"showMonth"              yaml:"showMonth"`
		ShowDayOfWeek          bool      `json:"showDayOfWeek"          yaml:"showDayOfWeek"`
		ShowStartTime          bool      `json:"showStartTime"          yaml:"showStartTime"`
		ShowEndTime            bool      `json:"showEndTime"            yaml:"showEndTime"`
		ShowSessionCount       bool      `json:"showSessionCount"       yaml:"showSessionCount"`
		ShowDuration           bool      `json:"showDuration"           yaml:"showDuration"`
		ShowHandsPerHour       bool      `json:"showHandsPerHour"       yaml:"showHandsPerHour"`
		ShowDailyPlan          bool      `json:"showDailyPlan"          yaml:"showDailyPlan"`
		ShowDailyPlanRemaining bool      `json:"showDailyPlanRemaining" yaml:"showDailyPlanRemaining"`
		ShowTotalPlayTime      bool      `json:"showTotalPlayTime"      yaml:"showTotalPlayTime"`
		ShowTotalPlanRemaining bool      `json:"showTotalPlanRemaining" yaml:"showTotalPlanRemaining"`
	}
)

const defaultCustomRangeDays = 30

// DefaultSettings returns the hardcoded defaults.
func DefaultSettings() Settings {
	return Settings{
		Theme:           ThemeDark,
		ActiveView:      ViewList,
		SplitPeriods:    true,
		ShowNotes:       true,
		ShowHandsPlayed: true,
		Goals:           Goals{},
		ListViewOptions: ListViewOptions{
			ShowMonth:              true,
			ShowDayOfWeek:          true,
			DateRangeMode:          RangeAll,
			CustomDateRangeDays:    defaultCustomRangeDays,
			ShowStartTime:          true,
			ShowEndTime:            true,
			ShowSessionCount:       true,
			ShowDuration:           true,
			ShowHandsPerHour:       true,
			ShowDailyPlan:          false,
			ShowDailyPlanRemaining: false,
			ShowTotalPlayTime:      true,
			ShowTotalPlanRemaining: false,
		},
	}
}
