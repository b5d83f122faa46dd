package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	searchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "defscope",
			Name:      "searches_total",
			Help:      "Total number of search queries served",
		},
	)

	searchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "defscope",
			Name:      "search_results",
			Help:      "Number of ranked results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	classifierDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "defscope",
			Name:      "classifier_decisions_total",
			Help:      "Classification outcomes by decision",
		},
		[]string{"decision"},
	)
)

// RegisterSearchMetrics registers the search and classifier collectors.
// Called once from the composition root.
func RegisterSearchMetrics() {
	prometheus.MustRegister(searchesTotal)
	prometheus.MustRegister(searchResults)
	prometheus.MustRegister(classifierDecisions)
}

// ObserveSearch records one served search and its result count.
func ObserveSearch(results int) {
	searchesTotal.Inc()
	searchResults.Observe(float64(results))
}

// ObserveClassification records accept/reject decisions from an ingest batch.
func ObserveClassification(accepted, rejected int) {
	classifierDecisions.WithLabelValues("accepted").Add(float64(accepted))
	classifierDecisions.WithLabelValues("rejected").Add(float64(rejected))
}
