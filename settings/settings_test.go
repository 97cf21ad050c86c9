package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()

	require.NotEmpty(t, tSettings.ClientName)
	require.NotEmpty(t, tSettings.DataFolder)
	require.NotZero(t, tSettings.Cache.MaxMemoryUsage)
	require.NotZero(t, tSettings.Cache.MaxOutputsPerBlock)
	require.Equal(t, "memory", tSettings.Store.Backend)
}

func TestCacheMaxMemoryUsageFromEnv(t *testing.T) {
	t.Setenv("cache_maxMemoryUsage", "64MB")

	tSettings := NewSettings()
	require.Equal(t, int64(64*1024*1024), tSettings.Cache.MaxMemoryUsage)
}

func TestStoreBackendFromEnv(t *testing.T) {
	t.Setenv("store_backend", "leveldb")

	tSettings := NewSettings()
	require.Equal(t, "leveldb", tSettings.Store.Backend)
}

func TestMetricsDefaultsEnabled(t *testing.T) {
	tSettings := NewSettings()
	require.True(t, tSettings.Metrics.Enabled)
	require.Equal(t, 5, tSettings.Metrics.SampleInterval)
}
