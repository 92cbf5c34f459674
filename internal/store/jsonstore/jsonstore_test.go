package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/store"
)

func TestGetMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "not-yet"))
	_, err := s.Get(store.DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetCreatesDirAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)

	require.NoError(t, s.Set("k", []byte(`[1]`)))
	require.NoError(t, s.Set("k", []byte(`[]`)))

	got, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"tada:todos:v1": "tada_todos_v1.json",
		"plain":         "plain.json",
		"../escape":     "_escape.json",
		"a/b":           "a_b.json",
		"":              "slot.json",
		"...":           "slot.json",
	}
	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, fileName(key))
		})
	}
}

func TestStoreOverFileSlot(t *testing.T) {
	dir := t.TempDir()
	s := store.Open(New(dir))
	a, _ := s.Add("Buy milk")
	s.Add("Walk dog")
	s.Toggle(a.ID)

	_, err := os.Stat(filepath.Join(dir, "tada_todos_v1.json"))
	require.NoError(t, err)

	reloaded := store.Open(New(dir))
	if diff := cmp.Diff(s.Todos(), reloaded.Todos()); diff != "" {
		t.Errorf("reloaded list differs (-want +got):\n%s", diff)
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	slot := New(dir)
	require.NoError(t, os.WriteFile(slot.Path(store.DefaultKey), []byte("not json"), 0o644))

	s := store.Open(slot)
	assert.Empty(t, s.Todos())

	s.Add("fresh start")
	b, err := os.ReadFile(slot.Path(store.DefaultKey))
	require.NoError(t, err)
	assert.Contains(t, string(b), "fresh start")
}
