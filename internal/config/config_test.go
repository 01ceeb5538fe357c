package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, SourceSeed, cfg.FleetSource)
	assert.Equal(t, "fleet", cfg.MongoDB)
	assert.Equal(t, 120, cfg.RateLimitRequests)
	assert.True(t, cfg.FixedNow.IsZero())
	assert.Contains(t, cfg.TileURL, "tile.openstreetmap.org")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("FLEET_SOURCE", "Mongo")
	t.Setenv("MONGO_DB", "evs")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("FIXED_NOW", "2025-11-09T12:05:00Z")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceMongo, cfg.FleetSource)
	assert.Equal(t, "evs", cfg.MongoDB)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Date(2025, 11, 9, 12, 5, 0, 0, time.UTC), cfg.Clock()().UTC())
}

func TestLoad_HTTPAddrWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("HTTP_ADDR", "127.0.0.1:7000")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.HTTPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("FLEET_SOURCE", "postgres")
	t.Setenv("RATE_LIMIT_REQUESTS", "many")
	t.Setenv("FIXED_NOW", "noon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLEET_SOURCE")
	assert.Contains(t, err.Error(), "RATE_LIMIT_REQUESTS")
	assert.Contains(t, err.Error(), "FIXED_NOW")
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MONGO_COLLECTION=evs_from_file\nLOG_LEVEL=warn\n"), 0o644))

	// Registered so the values loaded from the file are cleared after the test.
	t.Setenv("MONGO_COLLECTION", "")
	t.Setenv("LOG_LEVEL", "error")
	require.NoError(t, os.Unsetenv("MONGO_COLLECTION"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "evs_from_file", cfg.MongoCollection)
	assert.Equal(t, "error", cfg.LogLevel, "existing variables are not overridden")
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestClock_Default(t *testing.T) {
	cfg := defaultConfig()
	assert.WithinDuration(t, time.Now(), cfg.Clock()(), time.Second)
}
