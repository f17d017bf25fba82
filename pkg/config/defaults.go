package config

import "time"

// Default values for configuration fields.
const (
	// Lint defaults
	DefaultLintMode     = "sequential"
	DefaultContextLines = 1

	// Logging defaults
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// Metrics defaults
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsNamespace     = "wdlint"
	DefaultMetricsSubsystem     = "lint"

	// Store defaults
	DefaultStoreEnabled       = false
	DefaultStoreDriver        = "sqlite"
	DefaultStorePath          = ".wdlint/history.db"
	DefaultStoreBusyTimeout   = 5 * time.Second
	DefaultStoreRetentionDays = 30
	DefaultStorePruneSchedule = "0 * * * *"

	// Watch defaults
	DefaultWatchDebounce = 200 * time.Millisecond

	// Tracing defaults
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingServiceName = "wdlint"
)

// DefaultDurationBuckets are histogram buckets sized for per-document lint times.
var DefaultDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// DefaultWatchExtensions are the file extensions watched by default.
var DefaultWatchExtensions = []string{".wdl"}

// NewDefaultConfig returns a configuration with every default applied.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
// Fields that are already set are left untouched.
func ApplyDefaults(cfg *Config) {
	applyLintDefaults(&cfg.Lint)
	applyLoggingDefaults(&cfg.Logging)
	applyMetricsDefaults(&cfg.Metrics)
	applyStoreDefaults(&cfg.Store)
	applyWatchDefaults(&cfg.Watch)
	applyTracingDefaults(&cfg.Tracing)
}

func applyLintDefaults(cfg *LintConfig) {
	if cfg.Mode == "" {
		cfg.Mode = DefaultLintMode
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	if cfg.ContextLines == 0 {
		cfg.ContextLines = DefaultContextLines
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = DefaultLogLevel
	}
	if cfg.Format == "" {
		cfg.Format = DefaultLogFormat
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Path == "" {
		cfg.Path = DefaultMetricsPath
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
}

func applyStoreDefaults(cfg *StoreConfig) {
	if cfg.Driver == "" {
		cfg.Driver = DefaultStoreDriver
	}
	if cfg.Path == "" {
		cfg.Path = DefaultStorePath
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = DefaultStoreBusyTimeout
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = DefaultStoreRetentionDays
	}
	if cfg.PruneSchedule == "" {
		cfg.PruneSchedule = DefaultStorePruneSchedule
	}
}

func applyWatchDefaults(cfg *WatchConfig) {
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}
}

func applyTracingDefaults(cfg *TracingConfig) {
	if cfg.Sampler == "" {
		cfg.Sampler = DefaultTracingSampler
	}
	if cfg.SampleRatio == 0 {
		cfg.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTracingTimeout
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultTracingServiceName
	}
}
