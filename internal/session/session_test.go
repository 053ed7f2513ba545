package session

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokertime/pokertime/internal/timeutil"
)

var t0 = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

func at(offset time.Duration) *time.Time {
	v := t0.Add(offset)
	return &v
}

func finalized() *Session {
	s := New(t0)
	s.Periods[0].EndTime = at(10 * time.Minute)
	s.Periods = append(s.Periods, Period{
		Type:      Select,
		StartTime: *at(10 * time.Minute),
		EndTime:   at(15 * time.Minute),
	})
	s.OverallEndTime = at(15 * time.Minute)

	return s
}

func TestNewSession(t *testing.T) {
	s := New(t0)

	assert.Equal(t, "2024-03-01T20:00:00.000000000Z", s.ID)
	assert.False(t, s.Finalized())
	require.Len(t, s.Periods, 1)
	assert.Equal(t, Play, s.Periods[0].Type)
	assert.True(t, s.Periods[0].Open())
}

func TestIDOrderMatchesStartOrder(t *testing.T) {
	a := NewID(t0)
	b := NewID(t0.Add(500 * time.Millisecond))
	c := NewID(t0.Add(2 * time.Second))

	assert.Less(t, a, b)
	assert.Less(t, b, c)

	// Non-UTC zones normalise to the same key.
	loc := time.FixedZone("UTC+3", 3*60*60)
	assert.Equal(t, a, NewID(t0.In(loc)))
}

func TestDurations(t *testing.T) {
	d, err := finalized().Durations()
	require.NoError(t, err)

	assert.Equal(t, int64(900), d.TotalSeconds)
	assert.Equal(t, int64(600), d.PlaySeconds)
	assert.Equal(t, int64(300), d.SelectSeconds)
	assert.Equal(t, int64(600_000), d.PlayMillis)
}

func TestDurationsInvalidInterval(t *testing.T) {
	s := finalized()
	s.Periods[1].EndTime = at(5 * time.Minute)

	_, err := s.Durations()
	assert.True(t, errors.Is(err, timeutil.ErrInvalidInterval))
}

func TestDurationsOpenSession(t *testing.T) {
	_, err := New(t0).Durations()
	assert.ErrorIs(t, err, ErrNotFinalized)
}

func TestValidate(t *testing.T) {
	require.NoError(t, finalized().Validate())

	gap := finalized()
	gap.Periods[1].StartTime = *at(11 * time.Minute)
	assert.ErrorIs(t, gap.Validate(), ErrMisalignedPeriods)

	tail := finalized()
	tail.OverallEndTime = at(20 * time.Minute)
	assert.ErrorIs(t, tail.Validate(), ErrMisalignedPeriods)

	empty := finalized()
	empty.Periods = nil
	assert.ErrorIs(t, empty.Validate(), ErrNoPeriods)

	assert.ErrorIs(t, New(t0).Validate(), ErrNotFinalized)
}

func TestValidateZeroLengthPeriod(t *testing.T) {
	s := New(t0)
	s.Periods[0].EndTime = at(0)
	s.OverallEndTime = at(0)

	require.NoError(t, s.Validate())

	d, err := s.Durations()
	require.NoError(t, err)
	assert.Zero(t, d.TotalSeconds)
}

func TestCloneIsDeep(t *testing.T) {
	s := finalized()
	c := s.Clone()

	*c.Periods[0].EndTime = t0
	c.Notes = "changed"

	assert.Equal(t, *at(10 * time.Minute), *s.Periods[0].EndTime)
	assert.Empty(t, s.Notes)
}

func TestJSONShape(t *testing.T) {
	b, err := json.Marshal(finalized())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	for _, k := range []string{"id", "overallStartTime", "overallEndTime", "notes", "handsPlayed", "periods"} {
		assert.Contains(t, raw, k)
	}

	periods := raw["periods"].([]any)
	assert.Equal(t, "play", periods[0].(map[string]any)["type"])
	assert.Equal(t, "select", periods[1].(map[string]any)["type"])

	var back Session
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, Select, back.Periods[1].Type)
}

func TestUnmarshalUnknownPeriodType(t *testing.T) {
	var p Period

	err := json.Unmarshal([]byte(`{"type":"break","startTime":"2024-03-01T20:00:00Z"}`), &p)
	assert.ErrorIs(t, err, ErrUnknownPeriodType)
}
