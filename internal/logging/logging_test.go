package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "pokertime.log")

	logger, closer := New(path, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("session saved", slog.String("id", "abc"))

	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any

	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "session saved", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, "INFO", entry["level"])
}
