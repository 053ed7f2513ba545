// Package repository owns the collection of finalized sessions and persists
// it after every change
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/pokertime/pokertime/internal/session"
	"github.com/pokertime/pokertime/store"
)

// SessionsKey is the storage key of the session collection.
const SessionsKey = "poker-tracker-sessions"

var (
	ErrDuplicateID    = errors.New("a session with the same id already exists")
	ErrNotFound       = errors.New("session no longer exists")
	ErrInvalidSession = errors.New("invalid session")
)

// Patch lists the fields that may change after a session is finalized.
// Nil fields are left untouched.
type Patch struct {
	Notes       *string
	HandsPlayed *int
}

// Repository is an insertion-ordered collection of finalized sessions.
type Repository struct {
	storage  store.Storage
	sessions []session.Session
	mu       sync.RWMutex
}

// New loads the session collection from storage. A missing key yields an
// empty repository.
func New(storage store.Storage) (*Repository, error) {
	r := &Repository{storage: storage}

	b, err := storage.Load(SessionsKey)
	if errors.Is(err, store.ErrNotFound) {
		return r, nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading sessions: %w", err)
	}

	if err := json.Unmarshal(b, &r.sessions); err != nil {
		return nil, fmt.Errorf("decoding sessions: %w", err)
	}

	slog.Debug("sessions loaded", "count", len(r.sessions))

	return r, nil
}

// Append adds a finalized session. Its id is kept as is.
func (r *Repository) Append(sess *session.Session) (*session.Session, error) {
	if sess == nil {
		return nil, ErrInvalidSession
	}

	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(sess.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, sess.ID)
	}

	stored := sess.Clone()

	r.sessions = append(r.sessions, *stored)

	if err := r.persist(); err != nil {
		r.sessions = r.sessions[:len(r.sessions)-1]
		return nil, err
	}

	slog.Info("session appended", "id", stored.ID, "periods", len(stored.Periods))

	return stored.Clone(), nil
}

// Update merges the provided fields into the session with the given id.
func (r *Repository) Update(id string, patch Patch) (*session.Session, error) {
	if patch.HandsPlayed != nil && *patch.HandsPlayed < 0 {
		return nil, fmt.Errorf("%w: hands played cannot be negative", ErrInvalidSession)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	prev := r.sessions[i]
	updated := prev

	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}

	if patch.HandsPlayed != nil {
		updated.HandsPlayed = *patch.HandsPlayed
	}

	r.sessions[i] = updated

	if err := r.persist(); err != nil {
		r.sessions[i] = prev
		return nil, err
	}

	slog.Info("session updated", "id", id)

	return updated.Clone(), nil
}

// Get returns a copy of the session with the given id.
func (r *Repository) Get(id string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return r.sessions[i].Clone(), nil
}

// List returns a snapshot of all sessions, most recent first.
func (r *Repository) List() []session.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]session.Session, len(r.sessions))

	for i := range r.sessions {
		out[i] = *r.sessions[i].Clone()
	}

	slices.SortStableFunc(out, func(a, b session.Session) int {
		return strings.Compare(b.ID, a.ID)
	})

	return out
}

// Len returns the number of stored sessions.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

func (r *Repository) indexOf(id string) int {
	return slices.IndexFunc(r.sessions, func(s session.Session) bool {
		return s.ID == id
	})
}

// persist writes the whole collection. Callers hold the write lock.
func (r *Repository) persist() error {
	b, err := json.Marshal(r.sessions)
	if err != nil {
		return fmt.Errorf("encoding sessions: %w", err)
	}

	if err := r.storage.Save(SessionsKey, b); err != nil {
		return fmt.Errorf("saving sessions: %w", err)
	}

	return nil
}
