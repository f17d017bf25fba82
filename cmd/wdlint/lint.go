package main

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"wdlkit/wdl/pkg/cli"
	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/store"
	"wdlkit/wdl/pkg/telemetry/tracing"
	"wdlkit/wdl/pkg/wdl"
	"wdlkit/wdl/pkg/wdl/lint"
)

type lintOptions struct {
	format    string
	strict    bool
	noHistory bool
	rules     ruleFlags
}

func newLintCmd(g *globalOptions) *cobra.Command {
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:   "lint PATH...",
		Short: "Lint WDL files",
		Long: `Parse WDL files and run lint rules over them.

Directories are searched recursively for files with the extensions listed in
watch.extensions (default .wdl). Files with syntax errors are reported but not
linted.

Examples:
  # Lint a directory
  wdlint lint workflows/

  # Only run one rule
  wdlint lint --rule NoCurlyCommands main.wdl

  # Strict mode (warnings fail the run)
  wdlint lint --strict workflows/

  # JSON output for CI/CD
  wdlint lint --format json workflows/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, g, args)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat warnings as errors")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record this run in the history store")
	addRuleFlags(cmd, &opts.rules)
	return cmd
}

func addRuleFlags(cmd *cobra.Command, f *ruleFlags) {
	cmd.Flags().StringVar(&f.mode, "mode", "", "rule scheduling: sequential, parallel, fanout (default from config)")
	cmd.Flags().StringSliceVar(&f.only, "rule", nil, "run only these rules")
	cmd.Flags().StringSliceVar(&f.disable, "disable", nil, "do not run these rules")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "run only rules carrying one of these tags")
}

func (o *lintOptions) run(cmd *cobra.Command, g *globalOptions, args []string) error {
	cfg := config.MustGetConfig()
	printer, err := g.printer(cmd, o.format)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	linter, err := buildLinter(cfg, o.rules, g.logger, nil)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	files, err := collectFiles(args, cfg.Watch.Extensions)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}
	if len(files) == 0 {
		return usageError(cmd, "no WDL files found in %v", args)
	}

	ctx := cmd.Context()
	started := time.Now()
	results, err := lintFiles(ctx, linter, files)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	summary, err := printer.PrintResults(results)
	if err != nil {
		return cli.NewCommandError("lint", err)
	}

	if !o.noHistory {
		recordHistory(ctx, cfg.Store, g.logger, results, started)
	}
	return checkSummary(summary, o.strict)
}

// lintFiles lints files concurrently. Results keep the order of files.
func lintFiles(ctx context.Context, linter *lint.Linter, files []string) ([]*wdl.Result, error) {
	tracer := otel.Tracer("wdlkit/wdl/cmd/wdlint")
	results := make([]*wdl.Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			fctx, span := tracer.Start(gctx, "lint.File")
			span.SetAttributes(tracing.File(file))
			res, err := wdl.LintFile(fctx, linter, file)
			tracing.SetStatus(span, err)
			span.End()
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkSummary turns findings into the error that sets the exit code.
func checkSummary(s cli.Summary, strict bool) error {
	if s.Errors > 0 || s.Failed > 0 || (strict && s.Warnings > 0) {
		return &cli.FindingsError{Errors: s.Errors + s.Failed, Warnings: s.Warnings}
	}
	return nil
}

// recordHistory saves results to the history store and applies retention.
// History is best effort: failures are logged and never fail the command.
func recordHistory(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger, results []*wdl.Result, started time.Time) {
	if !cfg.Enabled {
		return
	}
	st, err := store.Open(cfg, logger)
	if err != nil {
		logger.Warn("failed to open history store", "error", err)
		return
	}
	defer st.Close()

	for _, res := range results {
		if err := st.Save(ctx, store.NewRun(res, started)); err != nil {
			logger.Warn("failed to record run", "file", res.Path, "error", err)
		}
	}
	if _, err := store.NewPruner(st, store.RetentionFromConfig(cfg), store.WithPruneLogger(logger)).Prune(ctx); err != nil {
		logger.Warn("failed to prune history", "error", err)
	}
}
