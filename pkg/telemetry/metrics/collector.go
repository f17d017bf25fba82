package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/wdl/diagnostic"
)

// Collector owns the Prometheus metrics for wdlint. It implements
// lint.Recorder so it can be passed to lint.WithMetrics directly.
//
// All Record methods are no-ops when metrics are disabled in the configuration.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	ruleMetrics *RuleMetrics
	runMetrics  *RunMetrics
}

// NewCollector creates a collector and registers its metrics with registry.
// If registry is nil, a fresh registry is created. Missing namespace,
// subsystem and buckets are filled with defaults.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true}
//	collector := metrics.NewCollector(cfg, nil)
//	linter := lint.New(lint.WithMetrics(collector))
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:      cfg,
		registry:    registry,
		ruleMetrics: NewRuleMetrics(cfg, registry),
		runMetrics:  NewRunMetrics(cfg, registry),
	}
}

// RecordRule records one rule execution over one document.
//
// Parameters:
//   - rule: Rule ID (e.g., "NoCurlyCommands")
//   - duration: Time spent in the rule's visitor
//   - diagnostics: Number of diagnostics the rule produced
//   - failed: Whether the rule aborted
func (c *Collector) RecordRule(rule string, duration time.Duration, diagnostics int, failed bool) {
	if !c.config.Enabled {
		return
	}

	c.ruleMetrics.RecordExecution(rule, duration, failed)
}

// RecordRun records a complete lint run over one document.
//
// Parameters:
//   - mode: Scheduling mode ("sequential", "parallel", "fanout")
//   - duration: Wall time of the run
//   - diagnostics: Total diagnostics in the report
func (c *Collector) RecordRun(mode string, duration time.Duration, diagnostics int) {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.RecordRun(mode, duration)
}

// RecordDiagnostics counts diagnostics by rule and severity. Syntax
// diagnostics have no rule and are counted under "syntax".
func (c *Collector) RecordDiagnostics(diags diagnostic.List) {
	if !c.config.Enabled {
		return
	}

	for _, d := range diags {
		c.ruleMetrics.RecordDiagnostic(d.Rule, d.Severity)
	}
}

// RecordFile records the outcome of linting one file.
//
// Parameters:
//   - outcome: One of "clean", "warnings", "errors", "syntax_errors", "failed"
func (c *Collector) RecordFile(outcome string) {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.RecordFile(outcome)
}

// RecordPruned records runs removed from the history store by retention.
func (c *Collector) RecordPruned(n int64) {
	if !c.config.Enabled {
		return
	}

	c.runMetrics.RecordPruned(n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
