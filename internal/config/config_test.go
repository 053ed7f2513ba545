package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	o, err := New()
	require.NoError(t, err)

	assert.Equal(t, time.Monday, o.Weekday)
	assert.Equal(t, time.Local, o.Location)
	assert.True(t, o.Notify)
	assert.Equal(t, "info", o.LogLevel)
}

func TestWithViperConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")

	o, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, path, o.ConfigPath)
	assert.FileExists(t, path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "week_start: monday")
}

func TestWithViperConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	content := []byte(`timezone: Europe/London
week_start: sunday
notify: false
post_session_cmd: echo done
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	o, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, "Europe/London", o.Location.String())
	assert.Equal(t, time.Sunday, o.Weekday)
	assert.False(t, o.Notify)
	assert.Equal(t, "echo done", o.PostSessionCmd)
}

func TestWithEnvOverrides(t *testing.T) {
	o, err := New(withEnv(map[string]string{
		"POKERTIME_WEEK_START": "sunday",
		"POKERTIME_NOTIFY":     "false",
		"POKERTIME_DB_PATH":    "/tmp/p.db",
		"UNRELATED":            "x",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Sunday, o.Weekday)
	assert.False(t, o.Notify)
	assert.Equal(t, "/tmp/p.db", o.DBPath)
	assert.Equal(t, "info", o.LogLevel)
}

func TestWithEnvInvalidValue(t *testing.T) {
	_, err := New(withEnv(map[string]string{
		"POKERTIME_NOTIFY": "perhaps",
	}))
	assert.ErrorIs(t, err, errConfigOption)
}

func TestValidateRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		opts Options
	}{
		{"timezone", Options{Timezone: "Mars/Olympus"}},
		{"week start", Options{WeekStart: "wednesday"}},
		{"week start typo", Options{WeekStart: "mon"}},
		{"log level", Options{LogLevel: "loud"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := tc.opts
			assert.ErrorIs(t, o.Validate(), errInvalidOption)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	o := &Options{LogLevel: "debug"}
	assert.Equal(t, "DEBUG", o.SlogLevel().String())
}
