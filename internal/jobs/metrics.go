package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job outcomes recorded in jobsProcessedTotal.
const (
	outcomeDone   = "done"
	outcomeRetry  = "retry"
	outcomeFailed = "failed"
)

var (
	jobsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindgarden",
			Subsystem: "jobs",
			Name:      "processed_total",
			Help:      "Jobs run by the worker, by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	jobRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mindgarden",
			Subsystem: "jobs",
			Name:      "run_duration_seconds",
			Help:      "Job execution latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)
