package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, session.KindUser)
	require.ErrorIs(t, err, session.ErrSnapshotNotFound)

	snap := &session.Snapshot{Present: true, Profile: session.Profile{Username: "alice"}}
	require.NoError(t, store.Save(ctx, session.KindUser, snap))

	loaded, err := store.Load(ctx, session.KindUser)
	require.NoError(t, err)
	assert.Equal(t, *snap, *loaded)

	// Mutating the loaded copy must not leak back into the store.
	loaded.Profile.Username = "mallory"
	again, err := store.Load(ctx, session.KindUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Profile.Username)

	require.NoError(t, store.Clear(ctx, session.KindUser))
	_, err = store.Load(ctx, session.KindUser)
	require.ErrorIs(t, err, session.ErrSnapshotNotFound)

	require.NoError(t, store.Clear(ctx, session.KindUser), "clearing twice is fine")

	require.Error(t, store.Save(ctx, session.KindUser, nil))
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := session.NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Load(ctx, session.KindUser)
	require.ErrorIs(t, err, session.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, session.KindUser, &session.Snapshot{
		Present: true,
		Profile: session.Profile{Username: "alice", Email: "alice@example.com"},
	}))
	require.NoError(t, store.Save(ctx, session.KindAdmin, &session.Snapshot{
		Present: true,
		Profile: session.Profile{Username: "root"},
	}))

	// A new store over the same file sees the persisted snapshots: this is
	// the reload-survival property.
	reopened, err := session.NewFileStore(path)
	require.NoError(t, err)

	userSnap, err := reopened.Load(ctx, session.KindUser)
	require.NoError(t, err)
	assert.Equal(t, "alice", userSnap.Profile.Username)

	adminSnap, err := reopened.Load(ctx, session.KindAdmin)
	require.NoError(t, err)
	assert.Equal(t, "root", adminSnap.Profile.Username)

	// Kinds clear independently.
	require.NoError(t, reopened.Clear(ctx, session.KindUser))
	_, err = reopened.Load(ctx, session.KindUser)
	require.ErrorIs(t, err, session.ErrSnapshotNotFound)
	_, err = reopened.Load(ctx, session.KindAdmin)
	require.NoError(t, err)
}

func TestFileStoreToleratesCorruptFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o600))

	store, err := session.NewFileStore(path)
	require.NoError(t, err)

	// Corrupt provisional data is dropped, not fatal.
	_, err = store.Load(ctx, session.KindUser)
	require.ErrorIs(t, err, session.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, session.KindUser, &session.Snapshot{Present: true}))
	snap, err := store.Load(ctx, session.KindUser)
	require.NoError(t, err)
	assert.True(t, snap.Present)
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := session.NewFileStore("")
	require.Error(t, err)
}
