package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"wdlkit/wdl/pkg/config"
)

// RunMetrics tracks per-document and per-file metrics.
//
// Metrics:
//   - wdlint_lint_runs_total: Lint runs by scheduling mode
//   - wdlint_lint_run_duration_seconds: Lint run wall time
//   - wdlint_lint_files_total: Files linted by outcome
//   - wdlint_lint_runs_pruned_total: Stored runs removed by retention
type RunMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	filesTotal  *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewRunMetrics creates and registers run metrics with the provided registry.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of lint runs",
			},
			[]string{"mode"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Wall time of a lint run over one document in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"mode"},
		),

		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_total",
				Help:      "Total number of files linted by outcome",
			},
			[]string{"outcome"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_pruned_total",
				Help:      "Total number of stored lint runs removed by retention",
			},
		),
	}

	registry.MustRegister(
		rm.runsTotal,
		rm.runDuration,
		rm.filesTotal,
		rm.prunedTotal,
	)

	return rm
}

// RecordRun records one lint run.
func (rm *RunMetrics) RecordRun(mode string, duration time.Duration) {
	rm.runsTotal.WithLabelValues(mode).Inc()
	rm.runDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordFile records the outcome of linting one file.
func (rm *RunMetrics) RecordFile(outcome string) {
	rm.filesTotal.WithLabelValues(outcome).Inc()
}

// RecordPruned adds n removed runs.
func (rm *RunMetrics) RecordPruned(n int64) {
	if n > 0 {
		rm.prunedTotal.Add(float64(n))
	}
}
