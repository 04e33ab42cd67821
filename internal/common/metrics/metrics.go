// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafatih_resolutions_total",
			Help: "Resolutions by feature and the tier that produced the answer",
		},
		[]string{"feature", "tier"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mafatih_resolution_duration_seconds",
			Help:    "End-to-end resolution latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feature"},
	)

	ExternalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafatih_external_requests_total",
			Help: "Outbound requests by service and outcome",
		},
		[]string{"service", "outcome"},
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "mafatih_external_request_duration_seconds",
			Help: "Outbound request latency by service",
		},
		[]string{"service"},
	)

	CatalogFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mafatih_catalog_fallbacks_total",
			Help: "Catalog listings served from the static fallback",
		},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafatih_cache_lookups_total",
			Help: "Catalog cache lookups by tier and result",
		},
		[]string{"tier", "result"},
	)

	RemindersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mafatih_reminders_total",
			Help: "Reminder deliveries by channel and status",
		},
		[]string{"channel", "status"},
	)
)
