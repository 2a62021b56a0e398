package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sessions.db")
	store, err := OpenStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRecordAndTouch(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record("sess-1", "demo.yaml"))
	require.NoError(t, store.Touch("sess-1"))
	require.NoError(t, store.Record("sess-1", "demo.yaml"), "re-recording the same session is an upsert")
}

func TestStoreForget(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record("sess-2", "demo.yaml"))
	require.NoError(t, store.Forget("sess-2"))
	require.NoError(t, store.Forget("sess-2"), "forgetting an absent session is not an error")
}

func TestLockfileTryLockIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.lock")

	first := NewLockfile(path)
	ok, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer first.Unlock()

	second := NewLockfile(path)
	ok, err = second.TryLock()
	require.NoError(t, err)
	require.False(t, ok, "a second lockfile instance must not acquire an already-held lock")
}
