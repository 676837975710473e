// Package handoff carries the raw analysis payload from the upload workflow to
// the report view across a navigation.
package handoff

import "sync"

// Key names the single slot holding the payload.
const Key = "analysisResult"

// Store is a single-slot, single-writer handoff.
type Store interface {
	// Put overwrites the slot.
	Put(payload string) error
	// Peek returns the payload without removing it.
	Peek() (string, bool)
	// Take returns the payload and empties the slot.
	Take() (string, bool)
}

type memoryStore struct {
	mu      sync.Mutex
	payload string
	set     bool
}

// NewMemoryStore returns a Store that lives as long as the process.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (m *memoryStore) Put(payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payload = payload
	m.set = true
	return nil
}

func (m *memoryStore) Peek() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.payload, m.set
}

func (m *memoryStore) Take() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, ok := m.payload, m.set
	m.payload, m.set = "", false
	return payload, ok
}
