package index

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for index writes and queries.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	DocsIndexedTotal *prometheus.CounterVec
	CommitsTotal     *prometheus.CounterVec
	QueriesTotal     *prometheus.CounterVec
	QueryLatency     *prometheus.HistogramVec
	QueryResults     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_docs_indexed_total",
				Help: "Total documents added to an index, by collection.",
			},
			[]string{"collection"},
		),
		CommitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_commits_total",
				Help: "Total index commits by collection and status.",
			},
			[]string{"collection", "status"},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_queries_total",
				Help: "Total queries by collection, query kind and status.",
			},
			[]string{"collection", "kind", "status"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "index_query_latency_seconds",
				Help:    "Query latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"collection"},
		),
		QueryResults: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "index_query_results",
				Help:    "Number of documents returned per query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
			[]string{"collection"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.DocsIndexedTotal,
			m.CommitsTotal,
			m.QueriesTotal,
			m.QueryLatency,
			m.QueryResults,
		)
	}

	return m
}

func (m *Metrics) docIndexed(collection string) {
	if m == nil {
		return
	}
	m.DocsIndexedTotal.WithLabelValues(collection).Inc()
}

func (m *Metrics) commit(collection string, err error) {
	if m == nil {
		return
	}
	m.CommitsTotal.WithLabelValues(collection, status(err)).Inc()
}

func (m *Metrics) query(collection, kind string, started time.Time, results int, err error) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(collection, kind, status(err)).Inc()
	m.QueryLatency.WithLabelValues(collection).Observe(time.Since(started).Seconds())
	if err == nil {
		m.QueryResults.WithLabelValues(collection).Observe(float64(results))
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
