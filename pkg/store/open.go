package store

import (
	"fmt"
	"log/slog"

	"wdlkit/wdl/pkg/config"
)

// Open returns the store described by cfg. A disabled store is backed by
// memory so callers never need to nil-check.
func Open(cfg config.StoreConfig, logger *slog.Logger) (Store, error) {
	if !cfg.Enabled {
		return NewMemoryStore(), nil
	}
	switch cfg.Driver {
	case "sqlite", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
	return NewSQLiteStore(&SQLiteConfig{
		Driver:      cfg.Driver,
		Path:        cfg.Path,
		BusyTimeout: cfg.BusyTimeout,
		WALMode:     true,
	}, logger)
}
