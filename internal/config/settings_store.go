package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/pokertime/pokertime/store"
)

// SettingsKey is the storage key of the settings document.
const SettingsKey = "poker-tracker-settings"

// SettingsStore keeps the stored (possibly partial) settings object and
// hands out complete settings merged with the defaults.
type SettingsStore struct {
	storage  store.Storage
	defaults Settings
	stored   StoredSettings
	mu       sync.RWMutex
}

// NewSettingsStore loads the stored settings. A missing or unreadable
// document yields the defaults.
func NewSettingsStore(storage store.Storage) (*SettingsStore, error) {
	s := &SettingsStore{
		storage:  storage,
		defaults: DefaultSettings(),
	}

	b, err := storage.Load(SettingsKey)
	if errors.Is(err, store.ErrNotFound) {
		return s, nil
	}

	if err != nil {
		return nil, err
	}

	stored, err := DecodeStored(b, false)
	if err != nil {
		slog.Warn("stored settings are unreadable, using defaults", "error", err)
		return s, nil
	}

	s.stored = stored

	return s, nil
}

// Get returns the stored settings merged with the defaults.
func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Merge(s.defaults, s.stored)
}

// Update overlays patch onto the stored object, saves it and returns the
// re-merged settings. The in-memory state is unchanged if saving fails.
func (s *SettingsStore) Update(patch StoredSettings) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Overlay(s.stored, patch)

	b, err := json.Marshal(next)
	if err != nil {
		return Settings{}, err
	}

	if err := s.storage.Save(SettingsKey, b); err != nil {
		return Merge(s.defaults, s.stored), fmt.Errorf("saving settings: %w", err)
	}

	s.stored = next

	slog.Debug("settings updated", "settings", string(b))

	return Merge(s.defaults, s.stored), nil
}

// Reset removes every stored setting so that the defaults apply again.
func (s *SettingsStore) Reset() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(SettingsKey, []byte("{}")); err != nil {
		return Merge(s.defaults, s.stored), fmt.Errorf("saving settings: %w", err)
	}

	s.stored = StoredSettings{}

	return s.defaults, nil
}

// SettingKeys lists the dotted keys accepted by ParseSetting.
var SettingKeys = []string{
	"theme",
	"activeView",
	"splitPeriods",
	"showNotes",
	"showHandsPlayed",
	"goals.hoursPerMonth",
	"goals.handsPerMonth",
	"goals.sessionsPerMonth",
	"listViewOptions.showMonth",
	"listViewOptions.showDayOfWeek",
	"listViewOptions.dateRangeMode",
	"listViewOptions.customDateRangeDays",
	"listViewOptions.showStartTime",
	"listViewOptions.showEndTime",
	"listViewOptions.showSessionCount",
	"listViewOptions.showDuration",
	"listViewOptions.showHandsPerHour",
	"listViewOptions.showDailyPlan",
	"listViewOptions.showDailyPlanRemaining",
	"listViewOptions.showTotalPlayTime",
	"listViewOptions.showTotalPlanRemaining",
}

// ParseSetting turns a dotted key and a textual value into a one-field
// patch. Values are validated strictly.
func ParseSetting(key, value string) (StoredSettings, error) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	encoded, err := encodeValue(value)
	if err != nil {
		return StoredSettings{}, err
	}

	var doc string

	if head, tail, nested := strings.Cut(key, "."); nested {
		doc = fmt.Sprintf(`{%q:{%q:%s}}`, head, tail, encoded)
	} else {
		doc = fmt.Sprintf(`{%q:%s}`, key, encoded)
	}

	patch, err := DecodeStored([]byte(doc), true)
	if err != nil {
		return StoredSettings{}, fmt.Errorf("%s: %w", key, err)
	}

	return patch, nil
}

// encodeValue renders a command-line value as a JSON literal: booleans and
// numbers as is, anything else as a string.
func encodeValue(value string) (string, error) {
	if strings.EqualFold(value, "true") || strings.EqualFold(value, "false") {
		return strings.ToLower(value), nil
	}

	if _, err := strconv.ParseFloat(value, 64); err == nil && json.Valid([]byte(value)) {
		return value, nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	return string(b), nil
}
