package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "pokertime.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	_, err = c.Load("sessions")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Save("sessions", []byte(`[{"id":"a"}]`)))
	require.NoError(t, c.Save("sessions", []byte(`[]`)))

	v, err := c.Load("sessions")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))

	require.NoError(t, c.Close())

	// data survives reopening
	c, err = NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	v, err = c.Load("sessions")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))
	assert.Equal(t, path, c.Path())
}

func TestClientLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokertime.db")

	c, err := NewClient(path)
	require.NoError(t, err)

	defer c.Close()

	_, err = NewClient(path)
	assert.ErrorIs(t, err, errAlreadyRunning)
}

func TestMemory(t *testing.T) {
	m := NewMemory()

	_, err := m.Load("k")
	assert.ErrorIs(t, err, ErrNotFound)

	buf := []byte("v1")
	require.NoError(t, m.Save("k", buf))

	buf[0] = 'x'

	v, err := m.Load("k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(v))
	assert.Equal(t, 1, m.Saves())
}
