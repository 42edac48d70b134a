package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) KV {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db.Pool))
	return KV{DB: db.Pool}
}

func TestKV_GetMissingKey(t *testing.T) {
	t.Parallel()

	kv := openTestDB(t)

	_, ok, err := kv.Get(context.Background(), "absente")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestKV_SetGetRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := openTestDB(t)

	require.NoError(t, kv.Set(ctx, "theme", "dark"))

	v, ok, err := kv.Get(ctx, "theme")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", v)
}

func TestKV_SetOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	kv := openTestDB(t)

	require.NoError(t, kv.Set(ctx, "k", "v1"))
	require.NoError(t, kv.Set(ctx, "k", "v2"))

	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db.Pool))
	require.NoError(t, Migrate(db.Pool))
}
