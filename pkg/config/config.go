package config

import "time"

// Config is the root configuration structure for wdlint.
// It is usually loaded from a .wdlint.yaml file.
type Config struct {
	// Lint contains rule selection and scheduling settings.
	Lint LintConfig `yaml:"lint"`

	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`

	// Store contains settings for the lint run history database.
	Store StoreConfig `yaml:"store"`

	// Watch contains settings for watch mode.
	Watch WatchConfig `yaml:"watch"`

	// Tracing contains OpenTelemetry tracing settings.
	Tracing TracingConfig `yaml:"tracing"`
}

// LintConfig contains rule selection and scheduling settings.
type LintConfig struct {
	// Mode selects how rules are scheduled over a document.
	// Options: "sequential", "parallel", "fanout"
	// Default: "sequential"
	Mode string `yaml:"mode"`

	// Rules configures individual rules by ID. Rules not listed are enabled
	// with their default severity.
	Rules map[string]RuleConfig `yaml:"rules"`

	// ContextLines is the number of source lines printed around a diagnostic
	// in text output.
	// Default: 1
	ContextLines int `yaml:"context_lines"`
}

// RuleConfig configures a single lint rule.
type RuleConfig struct {
	// Enabled controls whether the rule runs. A nil value means enabled.
	Enabled *bool `yaml:"enabled"`

	// Severity overrides the severity of the rule's diagnostics.
	// Options: "error", "warning", "note", or empty for the rule's default.
	Severity string `yaml:"severity"`
}

// IsEnabled reports whether the rule should run.
func (r RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics endpoint listens on in watch mode.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "wdlint"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "lint"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets defines histogram buckets for rule and run durations (seconds).
	// Default: [0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// StoreConfig contains configuration for the lint run history database.
type StoreConfig struct {
	// Enabled controls whether lint runs are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file path.
	// Default: ".wdlint/history.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// RetentionDays is how long runs are kept. A negative value keeps runs forever.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// MaxRuns caps the number of stored runs. Zero means no cap.
	// Default: 0
	MaxRuns int `yaml:"max_runs"`

	// PruneSchedule is the cron expression for the retention pruner in watch mode.
	// Default: "0 * * * *" (hourly)
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains watch mode configuration.
type WatchConfig struct {
	// Debounce is how long to wait after the last change before re-linting.
	// Default: 200ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions that trigger a re-lint.
	// Default: [".wdl"]
	Extensions []string `yaml:"extensions"`
}

// TracingConfig contains OpenTelemetry tracing configuration. Spans are
// exported over OTLP/gRPC.
type TracingConfig struct {
	// Enabled controls whether lint runs are traced.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS for the collector connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// ServiceName is the service name in traces.
	// Default: "wdlint"
	ServiceName string `yaml:"service_name"`
}
