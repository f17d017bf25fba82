package config

import (
	"fmt"
	"sync"
)

var (
	mu       sync.RWMutex
	current  *Config
	initOnce sync.Once
)

// Initialize loads the configuration at path (with environment overrides) and
// installs it as the process-wide configuration. Only the first call loads;
// later calls return nil without doing anything.
func Initialize(path string) error {
	var err error
	initOnce.Do(func() {
		var cfg *Config
		cfg, err = LoadConfigWithEnvOverrides(path)
		if err == nil {
			SetConfig(cfg)
		}
	})
	return err
}

// GetConfig returns the process-wide configuration, or nil before Initialize
// or SetConfig.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetConfig replaces the process-wide configuration.
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// ReloadConfig reloads path and swaps the process-wide configuration. The
// previous configuration stays in place when loading fails. Watch mode calls
// it when the configuration file changes.
func ReloadConfig(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	SetConfig(cfg)
	return nil
}

// MustGetConfig is like GetConfig but panics when no configuration is set.
func MustGetConfig() *Config {
	cfg := GetConfig()
	if cfg == nil {
		panic("configuration not initialized: call Initialize first")
	}
	return cfg
}
