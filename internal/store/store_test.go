package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "zbf.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	for name, s := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SetOverwritesAndGetReturnsLatest(t *testing.T) {
	ctx := context.Background()
	for name, s := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "zbf:data", []byte(`{"a":1}`)))
			require.NoError(t, s.Set(ctx, "zbf:data", []byte(`{"a":2}`)))

			got, err := s.Get(ctx, "zbf:data")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(got))
		})
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	for name, s := range openTestStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "one", []byte("1")))
			require.NoError(t, s.Set(ctx, "two", []byte("2")))

			require.NoError(t, s.Delete(ctx, "one"))
			_, err := s.Get(ctx, "one")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Clear(ctx))
			_, err = s.Get(ctx, "two")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "zbf.db")

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "zbf:data", []byte(`{"strengthPlan":{}}`)))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "zbf:data")
	require.NoError(t, err)
	assert.Equal(t, `{"strengthPlan":{}}`, string(got))
}
