// Package timer runs the live poker session: it owns the active session,
// records play and select periods as they change, and finalises the session
// into the repository when it is stopped
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/internal/timeutil"
)

// State is the state of a Machine.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}

	return "idle"
}

// Appender persists finalized sessions.
type Appender interface {
	Append(sess *session.Session) (*session.Session, error)
}

type (
	// MachineOption configures a Machine.
	MachineOption func(*Machine)

	// TickFunc receives the number of elapsed ticks of the running session.
	TickFunc func(elapsed int64)
)

// WithClock replaces the wall clock used to capture period boundaries.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		m.now = now
	}
}

// WithTickInterval sets the interval of the display tick.
func WithTickInterval(d time.Duration) MachineOption {
	return func(m *Machine) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithTickFunc registers a callback invoked on every display tick. It runs
// on the tick goroutine.
func WithTickFunc(fn TickFunc) MachineOption {
	return func(m *Machine) {
		m.onTick = fn
	}
}

// Machine is the session timer state machine. Recorded durations are always
// derived from the instants captured by Start, SwitchPeriod and Stop; the
// tick only drives the elapsed counter shown to the user.
type Machine struct {
	repo     Appender
	now      func() time.Time
	onTick   TickFunc
	current  *session.Session
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
	ticks    atomic.Int64
	state    State
	mu       sync.Mutex
}

// New returns an idle machine that appends finalized sessions to repo.
func New(repo Appender, opts ...MachineOption) *Machine {
	m := &Machine{
		repo:     repo,
		now:      time.Now,
		interval: time.Second,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Current returns a copy of the active session, or nil when idle.
func (m *Machine) Current() *session.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}

	return m.current.Clone()
}

// CurrentPeriodType returns the type of the open period, or 0 when idle.
func (m *Machine) CurrentPeriodType() session.PeriodType {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return 0
	}

	return m.current.CurrentPeriod().Type
}

// Elapsed returns the display counter: the number of ticks since Start.
func (m *Machine) Elapsed() int64 {
	return m.ticks.Load()
}

// Split returns the play and select seconds of the active session so far,
// counting the open period up to now.
func (m *Machine) Split() (play, sel int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return 0, 0
	}

	for i := range m.current.Periods {
		p := &m.current.Periods[i]

		end := m.now()
		if p.EndTime != nil {
			end = *p.EndTime
		}

		secs, err := timeutil.ElapsedSeconds(p.StartTime, end)
		if err != nil {
			continue
		}

		switch p.Type {
		case session.Play:
			play += secs
		case session.Select:
			sel += secs
		}
	}

	return play, sel
}

// capture reads the clock at one-second resolution so that the whole-second
// durations of the periods always add up to the session total. It never
// returns an instant earlier than floor.
func (m *Machine) capture(floor time.Time) time.Time {
	t := m.now().Truncate(time.Second)
	if t.Before(floor) {
		return floor
	}

	return t
}

func transitionError(op string, s State) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, s)
}

// Start begins a new session with a single open play period and starts the
// display tick. The tick stops when ctx is canceled, or on Stop or Abandon.
func (m *Machine) Start(ctx context.Context) (*session.Session, error) {
	return m.start(ctx, time.Time{})
}

// StartAt is like Start but backdates the session to at, which must not be
// in the future.
func (m *Machine) StartAt(
	ctx context.Context,
	at time.Time,
) (*session.Session, error) {
	if at.IsZero() {
		return nil, errZeroStart
	}

	return m.start(ctx, at.Truncate(time.Second))
}

func (m *Machine) start(
	ctx context.Context,
	at time.Time,
) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Idle {
		return nil, transitionError("start", m.state)
	}

	now := m.capture(time.Time{})

	var backlog int64

	if !at.IsZero() {
		if at.After(now) {
			return nil, fmt.Errorf("%w: %s", errFutureStart, at.Format(time.RFC3339))
		}

		backlog = int64(now.Sub(at) / time.Second)
		now = at
	}

	m.current = session.New(now)
	m.state = Running
	m.ticks.Store(backlog)
	m.startTick(ctx)

	slog.Debug("session started", "id", m.current.ID)

	return m.current.Clone(), nil
}

// SwitchPeriod closes the open period and opens one of type t. Switching to
// the type that is already open does nothing.
func (m *Machine) SwitchPeriod(t session.PeriodType) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Running {
		return transitionError("switch period", m.state)
	}

	if !t.Valid() {
		return fmt.Errorf("%w: %d", session.ErrUnknownPeriodType, int(t))
	}

	open := m.current.CurrentPeriod()
	if open.Type == t {
		return nil
	}

	now := m.capture(open.StartTime)

	open.EndTime = &now

	m.current.Periods = append(m.current.Periods, session.Period{
		Type:      t,
		StartTime: now,
	})

	slog.Debug("period switched", "id", m.current.ID, "type", t)

	return nil
}

// Stop closes the open period, finalises the session and appends it to the
// repository. The display tick is halted in every case. If the append
// fails the machine keeps running with the session intact so that Stop can
// be retried.
func (m *Machine) Stop() (*session.Session, error) {
	saved, done, err := m.stop()

	waitTick(done)

	return saved, err
}

func (m *Machine) stop() (*session.Session, <-chan struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Running {
		return nil, nil, transitionError("stop", m.state)
	}

	done := m.stopTick()

	open := m.current.CurrentPeriod()
	now := m.capture(open.StartTime)

	finalized := m.current.Clone()
	last := finalized.CurrentPeriod()
	last.EndTime = &now
	finalized.OverallEndTime = &now

	saved, err := m.repo.Append(finalized)
	if err != nil {
		slog.Error("session could not be saved", "id", finalized.ID, "error", err)

		return nil, done, fmt.Errorf("saving session: %w", err)
	}

	m.current = nil
	m.state = Idle

	return saved, done, nil
}

// Abandon discards the active session without recording it. It does
// nothing when idle.
func (m *Machine) Abandon() {
	waitTick(m.abandon())
}

func (m *Machine) abandon() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Running {
		return nil
	}

	done := m.stopTick()

	slog.Info("session abandoned", "id", m.current.ID)

	m.current = nil
	m.state = Idle

	return done
}

func (m *Machine) startTick(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)

	done := make(chan struct{})

	m.cancel = cancel
	m.done = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n := m.ticks.Add(1)

				if m.onTick != nil {
					m.onTick(n)
				}
			}
		}
	}()
}

// stopTick cancels the tick goroutine and returns a channel closed once it
// has exited. It must be called with m.mu held, and the channel must only be
// waited on after the lock is released: the tick callback may read the
// machine.
func (m *Machine) stopTick() <-chan struct{} {
	if m.cancel == nil {
		return nil
	}

	done := m.done

	m.cancel()

	m.cancel = nil
	m.done = nil

	return done
}

// waitTick blocks until the tick goroutine behind done has exited.
func waitTick(done <-chan struct{}) {
	if done != nil {
		<-done
	}
}
