package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wdlkit/wdl/pkg/config"
)

// RetentionConfig controls how long run history is kept.
type RetentionConfig struct {
	// RetentionDays is the number of days to keep runs. Zero or negative
	// disables age-based pruning.
	RetentionDays int

	// MaxRuns caps the number of stored runs. Zero means unlimited.
	MaxRuns int64

	// PruneSchedule is a cron expression for scheduled pruning.
	PruneSchedule string
}

// RetentionFromConfig converts the store section of the configuration.
func RetentionFromConfig(cfg config.StoreConfig) *RetentionConfig {
	return &RetentionConfig{
		RetentionDays: cfg.RetentionDays,
		MaxRuns:       int64(cfg.MaxRuns),
		PruneSchedule: cfg.PruneSchedule,
	}
}

// Pruner enforces retention on a Store.
type Pruner struct {
	store   Store
	config  *RetentionConfig
	logger  *slog.Logger
	now     func() time.Time
	onPrune func(deleted int64)
}

// PrunerOption configures a Pruner.
type PrunerOption func(*Pruner)

// WithPruneLogger sets the pruner's logger.
func WithPruneLogger(logger *slog.Logger) PrunerOption {
	return func(p *Pruner) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPruneHook registers fn to be called after every prune that deleted runs.
func WithPruneHook(fn func(deleted int64)) PrunerOption {
	return func(p *Pruner) {
		p.onPrune = fn
	}
}

// NewPruner creates a pruner for store.
func NewPruner(store Store, config *RetentionConfig, opts ...PrunerOption) *Pruner {
	if config == nil {
		config = &RetentionConfig{}
	}
	p := &Pruner{
		store:  store,
		config: config,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "store.retention")
	return p
}

// Prune deletes runs older than the retention period, then the oldest runs
// beyond MaxRuns. It returns the total number of runs deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.RetentionDays > 0 {
		cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.store.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned runs by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxRuns > 0 {
		count, err := p.store.Count(ctx)
		if err != nil {
			return total, fmt.Errorf("failed to count runs: %w", err)
		}
		if count > p.config.MaxRuns {
			deleted, err := p.store.DeleteOldest(ctx, count-p.config.MaxRuns)
			if err != nil {
				return total, fmt.Errorf("prune by count failed: %w", err)
			}
			total += deleted
			p.logger.Debug("pruned runs by count",
				"deleted_count", deleted,
				"max_runs", p.config.MaxRuns,
			)
		}
	}

	if total > 0 {
		p.logger.Info("run history pruned", "total_deleted", total)
		if p.onPrune != nil {
			p.onPrune(total)
		}
	}
	return total, nil
}
