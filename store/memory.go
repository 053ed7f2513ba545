package store

import "sync"

// Memory is an in-memory Storage. It is used in tests and as a scratch store.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
	// SaveErr, when set, is returned by every Save call
	SaveErr error
	saves   int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	return append([]byte(nil), v...), nil
}

func (m *Memory) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.data[key] = append([]byte(nil), value...)
	m.saves++

	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Saves reports how many successful saves have been made.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.saves
}
