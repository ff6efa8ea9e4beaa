package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtlabs/breadboard/internal/logging"
	rediscache "github.com/veldtlabs/breadboard/pkg/adapters/redis"
)

// validCatalogYAML is a minimal definition the file adapter accepts.
const validCatalogYAML = `id: 5f430e3a-52dc-4bcb-8bf9-119e43bc0be1
name: Resistor
prefix: R
variants:
  - id: 0c11f98a-7f83-44c5-a0c5-c1b791d47eb1
    name: default
    items:
      - id: 2f9a6269-08bb-4cd6-a0d1-0ac1151a56c8
        symbol: 6a105bc4-2b48-4b2a-92bd-6f0e9a2b6a5f
        suffix: ""
        offset: {x: "0.0", y: "0.0"}
        rotation: "0.0"
`

func seedCatalogDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resistor.yaml"), []byte(validCatalogYAML), 0o644))
	return dir
}

func TestLoadServeConfigDefaults(t *testing.T) {
	cfg, err := LoadServeConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./catalog", cfg.CatalogDir)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 64, cfg.MaxSessions)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Metrics)
}

func TestLoadServeConfigFromEnvironment(t *testing.T) {
	t.Setenv("BREADBOARD_ADDR", ":9999")
	t.Setenv("BREADBOARD_CATALOG", "/srv/catalog")
	t.Setenv("BREADBOARD_REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("BREADBOARD_CACHE_TTL", "15m")
	t.Setenv("BREADBOARD_MAX_SESSIONS", "8")
	t.Setenv("BREADBOARD_METRICS", "false")

	cfg, err := LoadServeConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/srv/catalog", cfg.CatalogDir)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 8, cfg.MaxSessions)
	assert.False(t, cfg.Metrics)
}

func TestBuildCatalogFileOnly(t *testing.T) {
	dir := seedCatalogDir(t)

	cat, err := BuildCatalog(dir, "", 0, logging.NewNop())
	require.NoError(t, err)

	defs, err := cat.List(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "Resistor", defs[0].Name)
}

func TestBuildCatalogWithRedisCache(t *testing.T) {
	dir := seedCatalogDir(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cat, err := BuildCatalog(dir, "redis://"+mr.Addr(), time.Minute, logging.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &rediscache.Catalog{}, cat)

	defs, err := cat.List(context.Background())
	require.NoError(t, err)
	require.Len(t, defs, 1)
}

func TestBuildCatalogBadRedisURL(t *testing.T) {
	dir := seedCatalogDir(t)

	_, err := BuildCatalog(dir, "not-a-url", 0, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestBuildCatalogMissingDirectory(t *testing.T) {
	_, err := BuildCatalog(filepath.Join(t.TempDir(), "absent"), "", 0, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}
