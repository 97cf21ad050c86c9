package settings

import "github.com/bsv-blockchain/coinscache/util/bytesize"

// NewSettings builds a Settings from gocore's process-wide config, applying
// the defaults noted alongside each getter.
func NewSettings() *Settings {
	maxMemory, err := bytesize.Parse(getString("cache_maxMemoryUsage", "300MB"))
	if err != nil {
		maxMemory = 300 * bytesize.MB
	}

	return &Settings{
		ClientName: getString("clientName", "defaultClientName"),
		DataFolder: getString("dataFolder", "data"),
		Cache: CacheSettings{
			MaxMemoryUsage:     int64(maxMemory),
			MaxOutputsPerBlock: getInt("cache_maxOutputsPerBlock", 100_000),
		},
		Store: StoreSettings{
			Backend:     getString("store_backend", "memory"),
			LevelDBPath: getString("store_leveldbPath", "./data/chainstate"),
		},
		Metrics: MetricsSettings{
			Enabled:        getBool("metrics_enabled", true),
			SampleInterval: getInt("metrics_sampleIntervalSeconds", 5),
		},
	}
}
