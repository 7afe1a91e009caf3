package state_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syncpointhq/src2dw/state"
)

func TestGetIntHandlesJSONNumbers(t *testing.T) {
	st := state.State{"cursor": float64(2)}
	require.Equal(t, 2, st.GetInt("cursor", 0))

	st = state.State{"cursor": 5}
	require.Equal(t, 5, st.GetInt("cursor", 0))

	require.Equal(t, 0, state.State{}.GetInt("cursor", 0))
}

func TestGetString(t *testing.T) {
	st := state.State{"last_synced": "2024-01-31T23:04:39Z"}
	require.Equal(t, "2024-01-31T23:04:39Z", st.GetString("last_synced", "2024-01-01T00:00:00Z"))
	require.Equal(t, "2024-01-01T00:00:00Z", st.GetString("missing", "2024-01-01T00:00:00Z"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := state.NewFileStore(filepath.Join(t.TempDir(), "state.json"))

	// first sync sees an empty state
	st, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, st)

	require.NoError(t, store.Save(state.State{"cursor": 3}))

	st, err = store.Load()
	require.NoError(t, err)
	require.Equal(t, 3, st.GetInt("cursor", 0))
}

func TestCloneIsolatesCheckpoint(t *testing.T) {
	st := state.State{"cursor": 1}
	snapshot := st.Clone()
	st["cursor"] = 2
	require.Equal(t, 1, snapshot.GetInt("cursor", 0))
}
