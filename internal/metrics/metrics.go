// Package metrics registers the Prometheus instruments exposed on /metrics
// in serve mode.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal counts completed screening runs.
	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "acidoscan_runs_total",
		Help: "Completed screening runs.",
	})

	// RunErrors counts screening runs that ended in an error.
	RunErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "acidoscan_run_errors_total",
		Help: "Screening runs that failed.",
	})

	// FlaggedSubjects is the flagged-subject count of the last run.
	FlaggedSubjects = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "acidoscan_flagged_subjects",
		Help: "Subjects flagged by the most recent run.",
	})

	// WithDiagnosis is how many flagged subjects carried a matching code in
	// the last run.
	WithDiagnosis = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "acidoscan_subjects_with_diagnosis",
		Help: "Flagged subjects with a matching diagnosis code in the most recent run.",
	})

	// RunDuration is the wall-clock duration of the last run in seconds.
	RunDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "acidoscan_last_run_duration_seconds",
		Help: "Duration of the most recent screening run.",
	})
)
