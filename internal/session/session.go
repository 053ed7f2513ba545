// Package session defines poker sessions and the play/select periods they are
// made of
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pokertime/pokertime/internal/timeutil"
)

// IDLayout formats session ids. The fixed-width fraction keeps lexicographic
// order identical to chronological order.
const IDLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	ErrUnknownPeriodType = errors.New("unknown period type")
	ErrNotFinalized      = errors.New("session is not finalized")
	ErrNoPeriods         = errors.New("session has no periods")
	ErrMisalignedPeriods = errors.New(
		"session periods are not contiguous with the session bounds",
	)
)

// PeriodType represents the activity recorded by a period.
type PeriodType int

const (
	Play PeriodType = iota + 1
	Select
)

// PeriodTypes lists every period type in display order.
var PeriodTypes = []PeriodType{Play, Select}

func (p PeriodType) String() string {
	switch p {
	case Play:
		return "play"
	case Select:
		return "select"
	}

	return fmt.Sprintf("PeriodType(%d)", int(p))
}

// Label is the human-readable name of the period type.
func (p PeriodType) Label() string {
	switch p {
	case Play:
		return "Play"
	case Select:
		return "Select"
	}

	return p.String()
}

// Valid reports whether p is a known period type.
func (p PeriodType) Valid() bool {
	return p == Play || p == Select
}

// ParsePeriodType converts "play" or "select" into a PeriodType.
func ParsePeriodType(s string) (PeriodType, error) {
	switch s {
	case "play":
		return Play, nil
	case "select":
		return Select, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPeriodType, s)
}

func (p PeriodType) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPeriodType, int(p))
	}

	return json.Marshal(p.String())
}

func (p *PeriodType) UnmarshalJSON(b []byte) error {
	var s string

	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	v, err := ParsePeriodType(s)
	if err != nil {
		return err
	}

	*p = v

	return nil
}

// Period is one contiguous stretch of a single activity type.
type Period struct {
	Type      PeriodType `json:"type"`
	StartTime time.Time  `json:"startTime"`
	// EndTime is nil while the period is still open
	EndTime *time.Time `json:"endTime"`
}

// Open reports whether the period has not been closed yet.
func (p *Period) Open() bool {
	return p.EndTime == nil
}

// Seconds returns the closed period's duration in whole seconds.
func (p *Period) Seconds() (int64, error) {
	if p.EndTime == nil {
		return 0, ErrNotFinalized
	}

	return timeutil.ElapsedSeconds(p.StartTime, *p.EndTime)
}

// Millis returns the closed period's duration in milliseconds.
func (p *Period) Millis() (int64, error) {
	if p.EndTime == nil {
		return 0, ErrNotFinalized
	}

	if p.EndTime.Before(p.StartTime) {
		_, err := timeutil.ElapsedSeconds(p.StartTime, *p.EndTime)
		return 0, err
	}

	return p.EndTime.Sub(p.StartTime).Milliseconds(), nil
}

// Session represents a tracked poker session.
type Session struct {
	ID               string     `json:"id"`
	OverallStartTime time.Time  `json:"overallStartTime"`
	OverallEndTime   *time.Time `json:"overallEndTime"`
	Notes            string     `json:"notes"`
	Periods          []Period   `json:"periods"`
	HandsPlayed      int        `json:"handsPlayed"`
}

// Durations holds per-type totals for a finalized session.
type Durations struct {
	TotalSeconds  int64
	PlaySeconds   int64
	SelectSeconds int64
	TotalMillis   int64
	PlayMillis    int64
	SelectMillis  int64
}

// NewID derives a session id from its start time.
func NewID(start time.Time) string {
	return start.UTC().Format(IDLayout)
}

// New starts a session at the given instant with a single open play period.
func New(start time.Time) *Session {
	return &Session{
		ID:               NewID(start),
		OverallStartTime: start,
		Periods: []Period{
			{Type: Play, StartTime: start},
		},
	}
}

// Finalized reports whether the session has been stopped.
func (s *Session) Finalized() bool {
	return s.OverallEndTime != nil
}

// CurrentPeriod returns the last period of the session, or nil if there is
// none.
func (s *Session) CurrentPeriod() *Period {
	if len(s.Periods) == 0 {
		return nil
	}

	return &s.Periods[len(s.Periods)-1]
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s

	if s.OverallEndTime != nil {
		end := *s.OverallEndTime
		c.OverallEndTime = &end
	}

	c.Periods = make([]Period, len(s.Periods))

	for i, p := range s.Periods {
		c.Periods[i] = p

		if p.EndTime != nil {
			end := *p.EndTime
			c.Periods[i].EndTime = &end
		}
	}

	return &c
}

// Validate checks the structural invariants of a finalized session: at least
// one period, periods contiguous and ordered, the first starting at the
// overall start and the last ending at the overall end.
func (s *Session) Validate() error {
	if !s.Finalized() {
		return ErrNotFinalized
	}

	if len(s.Periods) == 0 {
		return ErrNoPeriods
	}

	if _, err := timeutil.ElapsedSeconds(s.OverallStartTime, *s.OverallEndTime); err != nil {
		return err
	}

	if !s.Periods[0].StartTime.Equal(s.OverallStartTime) {
		return fmt.Errorf("%w: first period starts at %s",
			ErrMisalignedPeriods, s.Periods[0].StartTime.Format(time.RFC3339))
	}

	for i := range s.Periods {
		p := &s.Periods[i]

		if !p.Type.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownPeriodType, int(p.Type))
		}

		if p.EndTime == nil {
			return fmt.Errorf("%w: period %d is open", ErrNotFinalized, i)
		}

		if _, err := timeutil.ElapsedSeconds(p.StartTime, *p.EndTime); err != nil {
			return fmt.Errorf("period %d: %w", i, err)
		}

		if i > 0 && !s.Periods[i-1].EndTime.Equal(p.StartTime) {
			return fmt.Errorf("%w: gap before period %d", ErrMisalignedPeriods, i)
		}
	}

	if !s.CurrentPeriod().EndTime.Equal(*s.OverallEndTime) {
		return fmt.Errorf("%w: last period does not end with the session",
			ErrMisalignedPeriods)
	}

	return nil
}

// Durations sums the period durations of a finalized session by type. It
// fails with timeutil.ErrInvalidInterval when any interval is inverted.
func (s *Session) Durations() (Durations, error) {
	var d Durations

	if !s.Finalized() {
		return d, ErrNotFinalized
	}

	total, err := timeutil.ElapsedSeconds(s.OverallStartTime, *s.OverallEndTime)
	if err != nil {
		return d, err
	}

	d.TotalSeconds = total
	d.TotalMillis = s.OverallEndTime.Sub(s.OverallStartTime).Milliseconds()

	for i := range s.Periods {
		p := &s.Periods[i]

		secs, err := p.Seconds()
		if err != nil {
			return Durations{}, err
		}

		ms, err := p.Millis()
		if err != nil {
			return Durations{}, err
		}

		switch p.Type {
		case Play:
			d.PlaySeconds += secs
			d.PlayMillis += ms
		case Select:
			d.SelectSeconds += secs
			d.SelectMillis += ms
		default:
			return Durations{}, fmt.Errorf("%w: %d", ErrUnknownPeriodType, int(p.Type))
		}
	}

	return d, nil
}

// LocalStart returns the session start in loc (or unchanged if loc is nil).
func (s *Session) LocalStart(loc *time.Location) time.Time {
	if loc == nil {
		return s.OverallStartTime
	}

	return s.OverallStartTime.In(loc)
}
