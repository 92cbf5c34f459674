package store

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Slot.Get when nothing has been stored under the key.
var ErrNotFound = errors.New("slot not found")

// Slot is a single named key-value location holding the serialized list.
type Slot interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemorySlot keeps values in process memory. Useful for tests and throwaway sessions.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte

	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
	writes int
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: map[string][]byte{}}
}

func (m *MemorySlot) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlot) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Writes counts Set calls, failed ones included.
func (m *MemorySlot) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
