// Package metrics provides Prometheus metrics for lint runs.
//
// # Metrics
//
//   - Rule metrics: executions by status, time per rule, diagnostics by rule and severity
//   - Run metrics: runs and run time by scheduling mode, files by outcome, pruned history
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	linter := lint.New(lint.WithMetrics(collector))
//
// In watch mode the collector serves its registry, with the health probes
// mounted alongside:
//
//	go collector.Serve(ctx, logger, checker.Handlers(version, commit, date))
//
//	# HELP wdlint_lint_diagnostics_total Total number of diagnostics reported
//	# TYPE wdlint_lint_diagnostics_total counter
//	wdlint_lint_diagnostics_total{rule="NoCurlyCommands",severity="warning"} 3
package metrics
