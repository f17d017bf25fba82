package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"wdlkit/wdl/pkg/cli"
	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/telemetry/logging"
	"wdlkit/wdl/pkg/telemetry/tracing"
)

// globalOptions holds persistent flags and the state derived from them.
type globalOptions struct {
	configPath string
	verbose    bool
	noColor    bool

	// configFile is the configuration file in use, empty for defaults.
	configFile string

	logger *slog.Logger
	tracer *tracing.Tracer
}

func newRootCmd() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

func newRoot() (*cobra.Command, *globalOptions) {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "wdlint",
		Short: "wdlint - linter for Workflow Description Language documents",
		Long: `wdlint parses WDL documents into a lossless syntax tree, walks the typed
AST and reports rule findings with source context.

Configuration is read from .wdlint.yaml in the current directory or any
parent, or from the file given with --config. Environment variables of the
form WDLINT_SECTION_FIELD override file settings.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (default: search for "+config.FileName+")")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		newLintCmd(opts),
		newRulesCmd(opts),
		newExplainCmd(opts),
		newWatchCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(),
	)
	return cmd, opts
}

// setup loads the configuration and builds the logger.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	path := o.configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return cli.NewCommandError(cmd.Name(), err)
		}
		path = found
	}

	cfg, err := config.LoadConfigWithEnvOverrides(path)
	if err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	config.SetConfig(cfg)
	o.configFile = path

	logger, err := logging.New(logging.FromConfig(cfg.Logging, cmd.ErrOrStderr()))
	if err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	o.logger = logger
	if path != "" {
		logger.Debug("configuration loaded", "path", path)
	}

	tracer, err := tracing.New(&cfg.Tracing, Version)
	if err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	o.tracer = tracer
	if tracer.Enabled() {
		logger.Debug("tracing enabled", "endpoint", cfg.Tracing.Endpoint, "sampler", cfg.Tracing.Sampler)
	}
	return nil
}

// shutdown flushes pending spans. It is called once the command has
// finished, whatever its outcome.
func (o *globalOptions) shutdown() {
	if o.tracer == nil {
		return
	}
	timeout := config.DefaultTracingTimeout
	if cfg := config.GetConfig(); cfg != nil && cfg.Tracing.Timeout > 0 {
		timeout = cfg.Tracing.Timeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := o.tracer.Shutdown(ctx); err != nil {
		o.logger.Warn("failed to flush traces", "error", err)
	}
}

// printer builds an output printer for cmd. Colors are used only for text
// output to a terminal.
func (o *globalOptions) printer(cmd *cobra.Command, format string) (*cli.Printer, error) {
	f, err := cli.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()
	return cli.NewPrinter(out, f,
		cli.WithColor(!o.noColor && f == cli.FormatText && isTerminal(out)),
		cli.WithContextLines(config.MustGetConfig().Lint.ContextLines),
	), nil
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func usageError(cmd *cobra.Command, format string, args ...any) error {
	return cli.NewCommandError(cmd.Name(), fmt.Errorf(format, args...))
}
