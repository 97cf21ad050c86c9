package view

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics wraps the Prometheus counters/gauges the cache updates as it
// processes fetches, insertions, evictions and flushes.
type Metrics struct {
	size       prometheus.Gauge
	memory     prometheus.Gauge
	hits       prometheus.Counter
	misses     prometheus.Counter
	insertions prometheus.Counter
	evictions  prometheus.Counter
	flushes    prometheus.Counter
	flushErrs  prometheus.Counter
}

func (m *Metrics) setSize(n int)     { m.size.Set(float64(n)) }
func (m *Metrics) setMemory(n int64) { m.memory.Set(float64(n)) }
func (m *Metrics) hit()              { m.hits.Inc() }
func (m *Metrics) miss()             { m.misses.Inc() }
func (m *Metrics) insertion()        { m.insertions.Inc() }
func (m *Metrics) eviction()         { m.evictions.Inc() }
func (m *Metrics) flush()            { m.flushes.Inc() }
func (m *Metrics) flushError()       { m.flushErrs.Inc() }

var (
	metricsOnce    sync.Once
	defaultMetrics *Metrics
)

// InitMetrics registers the package's Prometheus collectors exactly once;
// later calls are no-ops. Safe to call from multiple goroutines/tests.
func InitMetrics() {
	metricsOnce.Do(initMetrics)
}

func initMetrics() {
	defaultMetrics = &Metrics{
		size: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "size",
			Help:      "Current number of entries held by the cache's local map.",
		}),
		memory: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "memory_bytes",
			Help:      "Current tracked dynamic memory usage of the cache, in bytes.",
		}),
		hits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Number of FetchCoin calls resolved from the local cache map.",
		}),
		misses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Number of FetchCoin calls that fell through to the parent BackingView.",
		}),
		insertions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "insertions_total",
			Help:      "Number of CacheEntry values created by FetchCoin or AddCoin.",
		}),
		evictions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Number of CacheEntry values SpendCoin dropped as pruned and FRESH.",
		}),
		flushes: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "flush_total",
			Help:      "Number of successful Flush calls.",
		}),
		flushErrs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "coinscache",
			Subsystem: "cache",
			Name:      "flush_errors_total",
			Help:      "Number of Flush calls rejected by the parent BackingView.",
		}),
	}
}

func init() {
	InitMetrics()
}
