// Package telemetry groups the observability packages used by wdlint.
//
//   - logging: structured slog logging with run and file context
//   - metrics: Prometheus metrics for rules, runs and history retention
//   - tracing: OpenTelemetry spans for files, lint runs and rules
//   - health: liveness and readiness probes served in watch mode
//
// Each package is configured from its own section of .wdlint.yaml and is a
// no-op when that section is disabled.
package telemetry
