package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"lint.mode", cfg.Lint.Mode, DefaultLintMode},
		{"lint.context_lines", cfg.Lint.ContextLines, DefaultContextLines},
		{"logging.level", cfg.Logging.Level, DefaultLogLevel},
		{"logging.format", cfg.Logging.Format, DefaultLogFormat},
		{"metrics.path", cfg.Metrics.Path, DefaultMetricsPath},
		{"metrics.namespace", cfg.Metrics.Namespace, DefaultMetricsNamespace},
		{"store.driver", cfg.Store.Driver, DefaultStoreDriver},
		{"store.path", cfg.Store.Path, DefaultStorePath},
		{"store.busy_timeout", cfg.Store.BusyTimeout, DefaultStoreBusyTimeout},
		{"store.retention_days", cfg.Store.RetentionDays, DefaultStoreRetentionDays},
		{"watch.debounce", cfg.Watch.Debounce, DefaultWatchDebounce},
		{"tracing.sampler", cfg.Tracing.Sampler, DefaultTracingSampler},
		{"tracing.endpoint", cfg.Tracing.Endpoint, DefaultTracingEndpoint},
		{"tracing.timeout", cfg.Tracing.Timeout, DefaultTracingTimeout},
		{"tracing.service_name", cfg.Tracing.ServiceName, DefaultTracingServiceName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	if cfg.Lint.Rules == nil {
		t.Error("expected rules map to be initialized")
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".wdl" {
		t.Errorf("unexpected extensions: %v", cfg.Watch.Extensions)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Lint:  LintConfig{Mode: "parallel"},
		Watch: WatchConfig{Debounce: time.Second, Extensions: []string{".wdl", ".wdlx"}},
	}
	ApplyDefaults(cfg)

	if cfg.Lint.Mode != "parallel" {
		t.Errorf("mode overwritten: %q", cfg.Lint.Mode)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("debounce overwritten: %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("extensions overwritten: %v", cfg.Watch.Extensions)
	}
}

func TestApplyDefaults_DoesNotAliasDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Watch.Extensions[0] = ".changed"
	if DefaultWatchExtensions[0] != ".wdl" {
		t.Error("modifying a config changed the package defaults")
	}
}

func TestNewDefaultConfig_IsValid(t *testing.T) {
	if err := Validate(NewDefaultConfig()); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
}
