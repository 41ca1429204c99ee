package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and tokenizer Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"}, // "ok" / "empty" / "error"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lexdex",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lexdex",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "query_cache_total",
			Help:      "Query vector cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	TokenizerLearnedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "tokenizer_learned_tokens_total",
			Help:      "Words added to the extra vocabulary at runtime",
		},
	)

	TokenizerUnknownTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lexdex",
			Name:      "tokenizer_unknown_tokens_total",
			Help:      "Word pieces that fell back to the unknown token",
		},
	)
)

var registered bool

// Register registers the metrics with the default registry. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(QueryCacheTotal)
	prometheus.MustRegister(TokenizerLearnedTotal)
	prometheus.MustRegister(TokenizerUnknownTotal)
	registered = true
}
