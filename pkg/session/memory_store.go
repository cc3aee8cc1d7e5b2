package session

import (
	"context"
	"sync"
)

// MemoryStore implements Store with process-local storage. Snapshots do not
// survive a restart; useful for tests and for embedders that manage their
// own persistence.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[Kind]Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[Kind]Snapshot)}
}

// Load returns the snapshot for a kind.
func (m *MemoryStore) Load(ctx context.Context, kind Kind) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, exists := m.snapshots[kind]
	if !exists {
		return nil, ErrSnapshotNotFound
	}

	copied := snap
	return &copied, nil
}

// Save stores the snapshot for a kind.
func (m *MemoryStore) Save(ctx context.Context, kind Kind, snap *Snapshot) error {
	if snap == nil {
		return ErrInvalidSnapshot
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[kind] = *snap
	return nil
}

// Clear removes the snapshot for a kind.
func (m *MemoryStore) Clear(ctx context.Context, kind Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.snapshots, kind)
	return nil
}
