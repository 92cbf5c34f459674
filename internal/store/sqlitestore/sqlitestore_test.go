package sqlitestore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/store"
)

func openTemp(t *testing.T) (*Slot, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "tada.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestGetMissing(t *testing.T) {
	s, _ := openTemp(t)
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.UpdatedAt("nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUpserts(t *testing.T) {
	s, _ := openTemp(t)
	stamp := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return stamp }

	require.NoError(t, s.Set("k", []byte(`["a"]`)))
	require.NoError(t, s.Set("k", []byte(`["b"]`)))
	require.NoError(t, s.Set("other", []byte(`[]`)))

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `["b"]`, string(got))

	at, err := s.UpdatedAt("k")
	require.NoError(t, err)
	assert.True(t, stamp.Equal(at))
}

func TestStoreSurvivesReopen(t *testing.T) {
	s, path := openTemp(t)
	todos := store.Open(s)
	a, _ := todos.Add("persist me")
	todos.Add("and me")
	todos.Toggle(a.ID)
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()

	reloaded := store.Open(again)
	if diff := cmp.Diff(todos.Todos(), reloaded.Todos()); diff != "" {
		t.Errorf("reloaded list differs (-want +got):\n%s", diff)
	}
}
