package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wdlkit/wdl/pkg/cli"
	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/store"
)

type historyOptions struct {
	format string
	file   string
	since  time.Duration
	limit  int
	show   string
	prune  bool
}

func newHistoryCmd(g *globalOptions) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded lint runs",
		Long: `Show lint runs recorded in the history store.

The store must be enabled with store.enabled in the configuration file or
WDLINT_STORE_ENABLED=true.

Examples:
  # Runs from the last day
  wdlint history --since 24h

  # Runs for one file
  wdlint history --file workflows/main.wdl

  # One run with its findings
  wdlint history --show 6f1c...

  # Apply the retention settings now
  wdlint history --prune`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, g)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&opts.file, "file", "", "only show runs for this file")
	cmd.Flags().DurationVar(&opts.since, "since", 0, "only show runs newer than this (e.g. 24h)")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&opts.show, "show", "", "show one run with its findings")
	cmd.Flags().BoolVar(&opts.prune, "prune", false, "delete runs outside the retention settings")
	return cmd
}

func (o *historyOptions) run(cmd *cobra.Command, g *globalOptions) error {
	cfg := config.MustGetConfig()
	if !cfg.Store.Enabled {
		return usageError(cmd, "history store is disabled (set store.enabled or WDLINT_STORE_ENABLED=true)")
	}

	printer, err := g.printer(cmd, o.format)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	st, err := store.Open(cfg.Store, g.logger)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	switch {
	case o.prune:
		deleted, err := store.NewPruner(st, store.RetentionFromConfig(cfg.Store), store.WithPruneLogger(g.logger)).Prune(ctx)
		if err != nil {
			return cli.NewCommandError("history", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pruned %d run(s)\n", deleted)
		return nil

	case o.show != "":
		run, err := st.Get(ctx, o.show)
		if errors.Is(err, store.ErrNotFound) {
			return usageError(cmd, "run %q not found", o.show)
		}
		if err != nil {
			return cli.NewCommandError("history", err)
		}
		return printer.PrintRun(run)
	}

	query := store.Query{Path: o.file, Limit: o.limit}
	if o.since > 0 {
		since := time.Now().Add(-o.since)
		query.Since = &since
	}
	runs, err := st.List(ctx, query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	return printer.PrintRuns(runs)
}
