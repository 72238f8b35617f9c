package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T) {
	t.Helper()
	old := os.Args
	os.Args = []string{"catalog"}
	t.Cleanup(func() { os.Args = old })
}

func TestLoadDefaults(t *testing.T) {
	resetArgs(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPServerAddr)
	assert.Equal(t, "data/products.json", cfg.ProductsFile)
	assert.Equal(t, "http://localhost:3001/images/products", cfg.ImagesBaseURL)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Zero(t, cfg.RateLimit.Limit)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
}

func TestLoadEnvOverride(t *testing.T) {
	resetArgs(t)
	t.Setenv("CATALOG_HTTP_SERVER_ADDR", ":9999")
	t.Setenv("CATALOG_PRODUCTS_FILE", "/tmp/catalog.json")
	t.Setenv("CATALOG_RATE_LIMIT_LIMIT", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPServerAddr)
	assert.Equal(t, "/tmp/catalog.json", cfg.ProductsFile)
	assert.Equal(t, 25, cfg.RateLimit.Limit)
}

func TestLoadMissingConfigFile(t *testing.T) {
	resetArgs(t)
	t.Setenv("CATALOG_CONFIG_FILE", "/does/not/exist.yaml")

	_, err := Load()
	require.Error(t, err)
}
