package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// JobsProcessed counts pipeline jobs by final status (success, failed).
	JobsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidecast_jobs_total",
			Help: "Pipeline jobs processed, by final status.",
		},
		[]string{"status"},
	)

	// TaskFailures counts failed concurrent tasks by kind
	// (narration-audio, image-fetch).
	TaskFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidecast_task_failures_total",
			Help: "Concurrent tasks that failed, by kind.",
		},
		[]string{"kind"},
	)

	// ProbeAttempts counts duration-measurement attempts by strategy and outcome.
	ProbeAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidecast_probe_attempts_total",
			Help: "Audio duration probe attempts, by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)

	// ScaleFactor records the last reconciliation scale factor per job.
	ScaleFactor = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slidecast_scale_factor",
			Help:    "Ratio of measured to estimated narration duration.",
			Buckets: []float64{0.5, 0.7, 0.85, 0.95, 1.0, 1.05, 1.15, 1.3, 1.5, 2.0},
		},
	)

	// JobDuration observes wall-clock job processing time in seconds.
	JobDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slidecast_job_duration_seconds",
			Help:    "Wall-clock time spent processing a job.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ActiveJobs tracks jobs currently being processed.
	ActiveJobs = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "slidecast_active_jobs",
			Help: "Jobs currently in flight.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		JobsProcessed,
		TaskFailures,
		ProbeAttempts,
		ScaleFactor,
		JobDuration,
		ActiveJobs,
	)
}
