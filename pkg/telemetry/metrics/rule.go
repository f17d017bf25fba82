package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/wdl/diagnostic"
)

// RuleMetrics tracks per-rule metrics.
//
// Metrics:
//   - wdlint_lint_rule_executions_total: Rule executions by rule and status
//   - wdlint_lint_rule_duration_seconds: Time spent in each rule
//   - wdlint_lint_diagnostics_total: Diagnostics by rule and severity
type RuleMetrics struct {
	executionsTotal *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	diagnostics     *prometheus.CounterVec
}

// NewRuleMetrics creates and registers rule metrics with the provided registry.
func NewRuleMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RuleMetrics {
	rm := &RuleMetrics{
		executionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_executions_total",
				Help:      "Total number of rule executions",
			},
			[]string{"rule", "status"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_duration_seconds",
				Help:      "Time spent executing a rule over one document in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"rule"},
		),

		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "diagnostics_total",
				Help:      "Total number of diagnostics reported",
			},
			[]string{"rule", "severity"},
		),
	}

	registry.MustRegister(
		rm.executionsTotal,
		rm.duration,
		rm.diagnostics,
	)

	return rm
}

// RecordExecution records one rule execution.
func (rm *RuleMetrics) RecordExecution(rule string, duration time.Duration, failed bool) {
	status := "ok"
	if failed {
		status = "failed"
	}
	rm.executionsTotal.WithLabelValues(rule, status).Inc()
	rm.duration.WithLabelValues(rule).Observe(duration.Seconds())
}

// RecordDiagnostic counts one diagnostic.
func (rm *RuleMetrics) RecordDiagnostic(rule string, severity diagnostic.Severity) {
	if rule == "" {
		rule = "syntax"
	}
	rm.diagnostics.WithLabelValues(rule, severity.String()).Inc()
}
