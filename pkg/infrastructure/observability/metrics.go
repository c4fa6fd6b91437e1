package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recipe lookup metrics
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bom_recipe_lookups_total",
			Help: "Total number of recipe lookups by kind and result",
		},
		[]string{"kind", "result"},
	)

	// Memoization metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bom_cache_hits_total",
			Help: "Total number of memoization cache hits during tree building",
		},
	)

	// Depth guard metrics
	TruncationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bom_depth_truncations_total",
			Help: "Total number of branches dropped by the recursion depth guard",
		},
	)

	// Analysis metrics
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bom_analysis_duration_seconds",
			Help:    "Time taken to build and analyze one BOM tree",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	AnalysisNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bom_analysis_tree_nodes",
			Help:    "Number of nodes in analyzed BOM trees",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)
)

// Lookup result labels
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Lookup kind labels
const (
	KindCustom  = "custom"
	KindCatalog = "catalog"
)

// RecordLookup records one recipe lookup
func RecordLookup(kind, result string) {
	LookupsTotal.WithLabelValues(kind, result).Inc()
}

// RecordCacheHit records a memoization cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordTruncation records a branch dropped by the depth guard
func RecordTruncation() {
	TruncationsTotal.Inc()
}

// RecordAnalysis records the duration and size of one completed analysis
func RecordAnalysis(duration time.Duration, nodes int) {
	AnalysisDuration.Observe(duration.Seconds())
	AnalysisNodes.Observe(float64(nodes))
}
