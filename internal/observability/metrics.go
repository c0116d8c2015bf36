package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the listing service.
type Metrics struct {
	// Feed loading metrics.
	FeedLoads         *prometheus.CounterVec // labels: outcome={success,error,snapshot}
	FeedFetchDuration prometheus.Histogram
	OutagesLoaded     prometheus.Gauge
	ProvincesIndexed  prometheus.Gauge
	CatalogReady      prometheus.Gauge

	// Query metrics.
	Queries       prometheus.Counter
	QueryResults  prometheus.Histogram
	QueryCache    *prometheus.CounterVec // labels: result={hit,miss}
	SnapshotSaves *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedLoads,
		m.FeedFetchDuration,
		m.OutagesLoaded,
		m.ProvincesIndexed,
		m.CatalogReady,
		m.Queries,
		m.QueryResults,
		m.QueryCache,
		m.SnapshotSaves,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outage_listing",
			Name:      "feed_loads_total",
			Help:      "Feed load attempts by outcome.",
		}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "outage_listing",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of the outage feed HTTP fetch.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		OutagesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "outage_listing",
			Name:      "outages_loaded",
			Help:      "Number of outages in the current snapshot.",
		}),
		ProvincesIndexed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "outage_listing",
			Name:      "provinces_indexed",
			Help:      "Number of distinct provinces in the province-sector index.",
		}),
		CatalogReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "outage_listing",
			Name:      "catalog_ready",
			Help:      "1 once the first feed load attempt has completed.",
		}),
		Queries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "outage_listing",
			Name:      "queries_total",
			Help:      "Total listing queries resolved.",
		}),
		QueryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "outage_listing",
			Name:      "query_results",
			Help:      "Number of outages matching a listing query.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		QueryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outage_listing",
			Name:      "query_cache_total",
			Help:      "Resolved-query cache lookups by result.",
		}, []string{"result"}),
		SnapshotSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outage_listing",
			Name:      "snapshot_saves_total",
			Help:      "Feed snapshot writes by outcome.",
		}, []string{"outcome"}),
	}
}
