package settings

// CacheSettings tunes the in-memory CoinsViewCache layer.
type CacheSettings struct {
	// MaxMemoryUsage is a threshold in bytes for callers to compare
	// dynamic_memory_usage() against; nothing in this repository forces a
	// flush from it.
	MaxMemoryUsage int64

	// MaxOutputsPerBlock is the scan bound for AccessByTxid, kept as a
	// parameter rather than hardcoded to a consensus constant.
	MaxOutputsPerBlock int
}

// StoreSettings configures the backing store beneath the cache.
type StoreSettings struct {
	// Backend selects the BackingView implementation: "memory" or "leveldb".
	Backend string

	// LevelDBPath is the directory for the on-disk backing store.
	LevelDBPath string
}

// MetricsSettings configures the Prometheus metrics collector.
type MetricsSettings struct {
	Enabled        bool
	SampleInterval int // seconds
}

// Settings holds every tunable for the cache core and its backing stores,
// sourced from gocore's config layer via NewSettings.
type Settings struct {
	ClientName string
	DataFolder string

	Cache   CacheSettings
	Store   StoreSettings
	Metrics MetricsSettings
}
