package config

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertime/pokertime/store"
)

func TestSettingsStoreDefaultsWhenEmpty(t *testing.T) {
	s, err := NewSettingsStore(store.NewMemory())
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), s.Get())
}

func TestSettingsStoreUpdatePersistsPartialObject(t *testing.T) {
	mem := store.NewMemory()

	s, err := NewSettingsStore(mem)
	require.NoError(t, err)

	got, err := s.Update(StoredSettings{
		Goals: &StoredGoals{HoursPerMonth: ref(60.0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, got.Goals.HoursPerMonth)
	assert.Equal(t, DefaultSettings().ListViewOptions, got.ListViewOptions)

	b, err := mem.Load(SettingsKey)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Equal(t, map[string]any{
		"goals": map[string]any{"hoursPerMonth": 60.0},
	}, raw)

	_, err = s.Update(StoredSettings{Goals: &StoredGoals{HandsPerMonth: ref(9000)}})
	require.NoError(t, err)

	reloaded, err := NewSettingsStore(mem)
	require.NoError(t, err)

	assert.Equal(t, 60.0, reloaded.Get().Goals.HoursPerMonth)
	assert.Equal(t, 9000, reloaded.Get().Goals.HandsPerMonth)
}

func TestSettingsStoreUpdateSaveFailure(t *testing.T) {
	mem := store.NewMemory()

	s, err := NewSettingsStore(mem)
	require.NoError(t, err)

	mem.SaveErr = errors.New("disk full")

	_, err = s.Update(StoredSettings{Theme: ref(ThemeLight)})
	require.Error(t, err)

	assert.Equal(t, ThemeDark, s.Get().Theme)
}

func TestSettingsStoreCorruptDocument(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Save(SettingsKey, []byte("not json")))

	s, err := NewSettingsStore(mem)
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), s.Get())
}

func TestSettingsStoreReset(t *testing.T) {
	mem := store.NewMemory()

	s, err := NewSettingsStore(mem)
	require.NoError(t, err)

	_, err = s.Update(StoredSettings{ShowNotes: ref(false)})
	require.NoError(t, err)

	got, err := s.Reset()
	require.NoError(t, err)
	assert.True(t, got.ShowNotes)
	assert.True(t, s.Get().ShowNotes)
}
