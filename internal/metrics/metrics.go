// Package metrics holds the Prometheus collectors shared by the API and the pruner.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synclog_records_created_total",
			Help: "Total number of log records written, by category",
		},
		[]string{"category"},
	)

	SetupSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synclog_setup_skipped_total",
			Help: "Events not logged because they did not pass the logging filters",
		},
		[]string{"reason"},
	)

	StoreFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synclog_store_failures_total",
			Help: "Record store operations that returned an error",
		},
		[]string{"operation"},
	)

	PruneRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synclog_prune_runs_total",
			Help: "Retention job runs by outcome",
		},
		[]string{"result"},
	)

	PruneDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synclog_prune_deleted_total",
			Help: "Records deleted by the retention job",
		},
		[]string{"category"},
	)

	PruneDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "synclog_prune_duration_seconds",
			Help:    "Wall time of a retention job run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)
)
