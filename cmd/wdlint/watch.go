package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wdlkit/wdl/pkg/cli"
	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/store"
	"wdlkit/wdl/pkg/telemetry/health"
	"wdlkit/wdl/pkg/telemetry/logging"
	"wdlkit/wdl/pkg/telemetry/metrics"
	"wdlkit/wdl/pkg/watch"
	"wdlkit/wdl/pkg/wdl"
	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/lint"
)

type watchOptions struct {
	format string
	rules  ruleFlags
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch PATH",
		Short: "Re-lint WDL files when they change",
		Long: `Lint PATH once, then again every time a WDL file under it changes.

When metrics are enabled the Prometheus endpoint is served for the lifetime of
the command, together with /healthz, /readyz and /version probes. Changes to
the configuration file are picked up without restarting. When the history store is enabled every run is recorded and the
retention pruner runs on store.prune_schedule.

Examples:
  wdlint watch workflows/
  WDLINT_METRICS_ENABLED=true wdlint watch workflows/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, g, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")
	addRuleFlags(cmd, &opts.rules)
	return cmd
}

// session is one watch invocation.
type session struct {
	linter    *lint.Linter
	printer   *cli.Printer
	store     store.Store
	record    bool
	collector *metrics.Collector
	logger    *slog.Logger

	mu sync.Mutex

	// lastErr is the error of the most recent batch, read by the readiness
	// probe while a batch may be running.
	statusMu sync.RWMutex
	lastErr  error
}

func (o *watchOptions) run(cmd *cobra.Command, g *globalOptions, path string) error {
	cfg := config.MustGetConfig()
	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	printer, err := g.printer(cmd, o.format)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	s := &session{printer: printer, record: cfg.Store.Enabled, logger: g.logger}

	s.store, err = store.Open(cfg.Store, g.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer s.store.Close()

	var recorder lint.Recorder
	if cfg.Metrics.Enabled {
		s.collector = metrics.NewCollector(&cfg.Metrics, nil)
		recorder = s.collector
		probes := s.checker().Handlers(Version, GitCommit, BuildDate)
		go func() {
			if err := s.collector.Serve(ctx, g.logger, probes); err != nil {
				g.logger.Error("metrics endpoint stopped", "error", err)
			}
		}()
	}

	s.linter, err = buildLinter(cfg, o.rules, g.logger, recorder)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	if g.configFile != "" {
		cw, err := watch.New(&watch.Config{Path: g.configFile, Debounce: cfg.Watch.Debounce}, g.logger)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer cw.Stop()
		go func() {
			err := cw.Watch(ctx, func([]string) {
				s.reload(g.configFile, o.rules, recorder)
			})
			if err != nil && ctx.Err() == nil {
				g.logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	if s.record {
		pruneOpts := []store.PrunerOption{store.WithPruneLogger(g.logger)}
		if s.collector != nil {
			pruneOpts = append(pruneOpts, store.WithPruneHook(s.collector.RecordPruned))
		}
		scheduler := store.NewScheduler(store.NewPruner(s.store, store.RetentionFromConfig(cfg.Store), pruneOpts...), g.logger)
		if err := scheduler.Start(ctx); err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer scheduler.Stop()
	}

	files, err := collectFiles([]string{path}, cfg.Watch.Extensions)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	s.lint(ctx, files)

	w, err := watch.New(watch.FromConfig(path, cfg.Watch), g.logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer w.Stop()

	err = w.Watch(ctx, func(paths []string) {
		s.lint(ctx, existing(paths))
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// lint lints one batch of files and reports the results. Batches never
// overlap.
func (s *session) lint(ctx context.Context, files []string) {
	if len(files) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = logging.WithRunID(ctx, uuid.NewString())
	started := time.Now()

	results, err := lintFiles(ctx, s.linter, files)
	if err != nil && errors.Is(err, context.Canceled) {
		return
	}
	s.setStatus(err)
	if err != nil {
		s.logger.ErrorContext(ctx, "lint failed", "error", err)
		return
	}
	if _, err := s.printer.PrintResults(results); err != nil {
		s.logger.ErrorContext(ctx, "failed to print results", "error", err)
	}

	for _, res := range results {
		fctx := logging.WithFile(ctx, res.Path)
		if s.collector != nil {
			s.collector.RecordDiagnostics(res.Diagnostics())
			s.collector.RecordFile(outcome(res))
		}
		if s.record {
			if err := s.store.Save(fctx, store.NewRun(res, started)); err != nil {
				s.logger.WarnContext(fctx, "failed to record run", "error", err)
			}
		}
		s.logger.DebugContext(fctx, "file linted", "diagnostics", len(res.Diagnostics()))
	}
}

// reload re-reads the configuration file and swaps in a linter built from
// it. The running linter is kept when the new configuration is invalid.
func (s *session) reload(path string, flags ruleFlags, recorder lint.Recorder) {
	if err := config.ReloadConfig(path); err != nil {
		s.logger.Error("failed to reload configuration", "path", path, "error", err)
		return
	}
	linter, err := buildLinter(config.MustGetConfig(), flags, s.logger, recorder)
	if err != nil {
		s.logger.Error("failed to apply reloaded configuration", "path", path, "error", err)
		return
	}

	s.mu.Lock()
	s.linter = linter
	s.mu.Unlock()
	s.logger.Info("configuration reloaded", "path", path, "rules", len(linter.Rules()))
}

// checker builds the readiness checks for the probe endpoints.
func (s *session) checker() *health.Checker {
	c := health.New(0)
	c.RegisterCheck("store", func(ctx context.Context) error {
		_, err := s.store.Count(ctx)
		return err
	})
	c.RegisterCheck("lint", func(context.Context) error {
		s.statusMu.RLock()
		defer s.statusMu.RUnlock()
		return s.lastErr
	})
	return c
}

func (s *session) setStatus(err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.lastErr = err
}

// outcome classifies a result for the files_total metric.
func outcome(res *wdl.Result) string {
	switch {
	case res.Syntax.HasErrors():
		return "syntax_errors"
	case res.Report != nil && res.Report.Failed():
		return "failed"
	case res.Report != nil && len(res.Report.Diagnostics.BySeverity(diagnostic.SeverityError)) > 0:
		return "errors"
	case len(res.Diagnostics()) > 0:
		return "warnings"
	default:
		return "clean"
	}
}

// existing drops paths that were removed before the batch fired.
func existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}
