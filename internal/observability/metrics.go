package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for dataset loading and view computation.
type Metrics struct {
	// Dataset load metrics.
	DatasetRecords      prometheus.Gauge
	DatasetUnlocated    prometheus.Gauge
	DatasetLoadDuration prometheus.Histogram
	DatasetLoadedAt     prometheus.Gauge

	// View metrics.
	ViewRequests *prometheus.CounterVec   // labels: view={map,trend}, filtered={true,false}
	ViewEmpty    *prometheus.CounterVec   // labels: view={map,trend}
	ViewDuration *prometheus.HistogramVec // labels: view={map,trend}
	ViewSize     *prometheus.HistogramVec // labels: view={map,trend}

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetRecords,
		m.DatasetUnlocated,
		m.DatasetLoadDuration,
		m.DatasetLoadedAt,
		m.ViewRequests,
		m.ViewEmpty,
		m.ViewDuration,
		m.ViewSize,
		m.GeocodeRequests,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "homicide_dashboard",
			Name:      "dataset_records",
			Help:      "Number of normalized records held in memory.",
		}),
		DatasetUnlocated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "homicide_dashboard",
			Name:      "dataset_unlocated_records",
			Help:      "Records kept without coordinates; shown in the trend but not on the map.",
		}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "homicide_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of the startup fetch, parse, and normalize of the dataset.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		}),
		DatasetLoadedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "homicide_dashboard",
			Name:      "dataset_loaded_timestamp_seconds",
			Help:      "Unix time at which the dataset finished loading.",
		}),
		ViewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homicide_dashboard",
			Name:      "view_requests_total",
			Help:      "View computations by view and whether any filter was active.",
		}, []string{"view", "filtered"}),
		ViewEmpty: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homicide_dashboard",
			Name:      "view_empty_total",
			Help:      "View computations whose filters matched no records.",
		}, []string{"view"}),
		ViewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "homicide_dashboard",
			Name:      "view_duration_seconds",
			Help:      "Time spent filtering and aggregating a view.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"view"}),
		ViewSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "homicide_dashboard",
			Name:      "view_size",
			Help:      "Number of points (map) or hover rows (trend) returned per view.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"view"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homicide_dashboard",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "homicide_dashboard",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
