// Package config provides configuration management for wdlint.
//
// Configuration is read from a YAML file (normally .wdlint.yaml, located with
// FindConfig), completed with defaults, overridden from the environment and
// validated.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig(".wdlint.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides(".wdlint.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention WDLINT_SECTION_FIELD:
//
//   - WDLINT_LINT_MODE overrides lint.mode
//   - WDLINT_LOG_LEVEL and WDLINT_LOG_FORMAT override logging.level and logging.format
//   - WDLINT_STORE_ENABLED and WDLINT_STORE_PATH override store.enabled and store.path
//   - WDLINT_METRICS_ENABLED overrides metrics.enabled
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// Validation collects every problem before failing:
//
//	configuration validation failed with 2 errors:
//	  - lint.mode: invalid lint mode "fast": must be 'sequential', 'parallel', or 'fanout'
//	  - store.prune_schedule: invalid cron expression "hourly": ...
//
// # Example Configuration
//
//	lint:
//	  mode: fanout
//	  rules:
//	    NoCurlyCommands:
//	      severity: error
//
//	logging:
//	  level: info
//	  format: json
//
//	store:
//	  enabled: true
//	  path: .wdlint/history.db
//	  retention_days: 14
package config
