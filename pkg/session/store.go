package session

import "context"

// Store persists session snapshots across reloads. Implementations keep one
// snapshot per identity kind; user and admin snapshots never share a key.
//
// Writes are last-write-wins with no cross-context locking. That is
// acceptable because the persisted copy is never trusted for privileged
// decisions: the resolver re-validates against the server before any
// sensitive action.
type Store interface {
	// Load returns the snapshot for a kind, or ErrSnapshotNotFound.
	Load(ctx context.Context, kind Kind) (*Snapshot, error)

	// Save stores the snapshot for a kind, replacing any previous one.
	Save(ctx context.Context, kind Kind, snap *Snapshot) error

	// Clear removes the snapshot for a kind. Clearing a missing snapshot
	// is not an error.
	Clear(ctx context.Context, kind Kind) error
}
