package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitup/internal/config"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()

	fileKV, err := NewFileKV(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sqliteKV, err := NewSQLiteKV(filepath.Join(t.TempDir(), "splitup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteKV.Close() })

	return map[string]KV{"file": fileKV, "sqlite": sqliteKV}
}

func TestKV_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "missing")
			assert.True(t, errors.Is(err, ErrKeyNotFound))

			require.NoError(t, kv.Put(ctx, KeyProjects, []byte(`[1]`)))
			require.NoError(t, kv.Put(ctx, KeyProjects, []byte(`[1,2]`)))

			data, err := kv.Get(ctx, KeyProjects)
			require.NoError(t, err)
			assert.Equal(t, `[1,2]`, string(data))

			require.NoError(t, kv.Delete(ctx, KeyProjects))
			require.NoError(t, kv.Delete(ctx, KeyProjects))
			_, err = kv.Get(ctx, KeyProjects)
			assert.True(t, errors.Is(err, ErrKeyNotFound))
		})
	}
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, kv.Put(context.Background(), "../escape", []byte("x")))
	_, err = kv.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestOpen_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(&config.Config{Backend: config.BackendJSON}, dir)
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = Open(&config.Config{Backend: config.BackendSQLite}, dir)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	assert.IsType(t, &SQLiteKV{}, kv)

	_, err = Open(&config.Config{Backend: "etcd"}, dir)
	assert.Error(t, err)
}
