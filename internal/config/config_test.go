package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, BackendJSON, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := &Config{Backend: BackendSQLite, LogLevel: "debug", DefaultUnit: "$", Seed: 9}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestResolveDataDir(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/cfg", "data"), cfg.ResolveDataDir("/cfg"))

	cfg.DataDir = "/elsewhere"
	assert.Equal(t, "/elsewhere", cfg.ResolveDataDir("/cfg"))
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPLITUP_HOME", home)
	t.Setenv("SPLITUP_BACKEND", BackendSQLite)
	t.Setenv("SPLITUP_SEED", "123")

	require.NoError(t, os.WriteFile(filepath.Join(home, ".env"), []byte("SPLITUP_LOG_LEVEL=warn\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("SPLITUP_LOG_LEVEL") })

	cfg, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, int64(123), cfg.Seed)
	assert.Equal(t, "warn", cfg.LogLevel)
}
