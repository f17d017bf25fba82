package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by FindConfig.
const FileName = ".wdlint.yaml"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention WDLINT_SECTION_FIELD (e.g., WDLINT_LINT_MODE).
// Environment variables always take precedence over file-based configuration.
//
// An empty path loads the defaults instead of a file.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = NewDefaultConfig()
	} else {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// FindConfig searches dir and its parents for a .wdlint.yaml file.
// It returns "" when none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format WDLINT_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Lint overrides
	if val := os.Getenv("WDLINT_LINT_MODE"); val != "" {
		cfg.Lint.Mode = val
	}
	if val := os.Getenv("WDLINT_LINT_CONTEXT_LINES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Lint.ContextLines = i
		}
	}

	// Logging overrides
	if val := os.Getenv("WDLINT_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("WDLINT_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}

	// Metrics overrides
	if val := os.Getenv("WDLINT_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("WDLINT_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Metrics.ListenAddress = val
	}

	// Store overrides
	if val := os.Getenv("WDLINT_STORE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Store.Enabled = b
		}
	}
	if val := os.Getenv("WDLINT_STORE_DRIVER"); val != "" {
		cfg.Store.Driver = val
	}
	if val := os.Getenv("WDLINT_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("WDLINT_STORE_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Store.RetentionDays = i
		}
	}

	// Watch overrides
	if val := os.Getenv("WDLINT_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	// Tracing overrides
	if val := os.Getenv("WDLINT_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("WDLINT_TRACING_ENDPOINT"); val != "" {
		cfg.Tracing.Endpoint = val
	}
}
