// Package tracing sets up OpenTelemetry tracing for wdlint.
//
// Lint runs produce a span per file, a "lint.Run" span per document and a
// "lint.Rule" span per rule (see package lint). Spans are exported over
// OTLP/gRPC to the collector named in the tracing section of the
// configuration:
//
//	tracing:
//	  enabled: true
//	  endpoint: localhost:4317
//	  insecure: true
//	  sampler: ratio
//	  sample_ratio: 0.25
//
// When tracing is disabled New returns a Tracer backed by a no-op provider,
// so instrumented code never needs to check.
package tracing
