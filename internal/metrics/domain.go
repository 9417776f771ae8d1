package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search, comparison and dataset Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specdex",
			Name:      "searches_total",
			Help:      "Total number of search queries",
		},
		[]string{"status"}, // "ok" / "error"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "specdex",
			Name:      "search_duration_seconds",
			Help:      "Search execution time in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "specdex",
			Name:      "search_results",
			Help:      "Number of records returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	IndexRefreshesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specdex",
			Name:      "index_refreshes_total",
			Help:      "Total number of search index rebuilds",
		},
		[]string{"status"},
	)

	ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specdex",
			Name:      "comparisons_total",
			Help:      "Total number of comparison matrix builds",
		},
		[]string{"status"},
	)

	CompareSetSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "specdex",
			Name:      "compare_set_size",
			Help:      "Number of records in comparison sets at matrix build time",
			Buckets:   []float64{1, 2, 3, 4},
		},
	)

	DatasetImportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specdex",
			Name:      "dataset_imports_total",
			Help:      "Total number of dataset imports",
		},
		[]string{"format", "status"},
	)

	DatasetExportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "specdex",
			Name:      "dataset_exports_total",
			Help:      "Total number of dataset exports",
		},
		[]string{"format", "status"},
	)

	DatasetRecordsImported = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "specdex",
			Name:      "dataset_records_imported_total",
			Help:      "Total records loaded through dataset imports",
		},
	)
)

var domainMetricsRegistered bool

// RegisterDomainMetrics registers Prometheus domain metrics. Must be called once from main.
func RegisterDomainMetrics() {
	if domainMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(IndexRefreshesTotal)
	prometheus.MustRegister(ComparisonsTotal)
	prometheus.MustRegister(CompareSetSize)
	prometheus.MustRegister(DatasetImportsTotal)
	prometheus.MustRegister(DatasetExportsTotal)
	prometheus.MustRegister(DatasetRecordsImported)
	domainMetricsRegistered = true
}
