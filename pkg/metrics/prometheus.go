package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RunsProcessed  prometheus.Counter
	TripsMatched   prometheus.Counter
	ReportsSent    prometheus.Counter
	ProcessingTime prometheus.Histogram
	ErrorsCount    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RunsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_processed_total",
			Help:      "The total number of completed deal pipeline runs",
		}),
		TripsMatched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_matched_total",
			Help:      "The total number of trips surviving all filters",
		}),
		ReportsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_sent_total",
			Help:      "The total number of reports delivered by email",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_processing_time_seconds",
			Help:      "Time taken by one deal pipeline run",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
