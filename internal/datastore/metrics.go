package datastore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the datastore client.
type Metrics struct {
	FetchesTotal   *prometheus.CounterVec
	RequestsTotal  *prometheus.CounterVec
	RecordsFetched prometheus.Counter
	FetchDuration  prometheus.Histogram
}

// NewMetrics registers the datastore collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resalepulse",
			Subsystem: "datastore",
			Name:      "fetches_total",
			Help:      "Window fetches by outcome.",
		}, []string{"outcome"}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resalepulse",
			Subsystem: "datastore",
			Name:      "requests_total",
			Help:      "Upstream HTTP requests by status code.",
		}, []string{"status"}),
		RecordsFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "resalepulse",
			Subsystem: "datastore",
			Name:      "records_fetched_total",
			Help:      "Transaction records fetched across all windows.",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "resalepulse",
			Subsystem: "datastore",
			Name:      "fetch_duration_seconds",
			Help:      "End-to-end duration of window fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
