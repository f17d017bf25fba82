// wdlint lints Workflow Description Language (WDL) documents.
//
// Usage:
//
//	# Lint files and directories
//	wdlint lint workflows/ tasks/align.wdl
//
//	# JSON output for CI, warnings fail the build
//	wdlint lint --format json --strict workflows/
//
//	# List rules and explain one
//	wdlint rules
//	wdlint explain NoCurlyCommands
//
//	# Re-lint on every change, recording history and serving metrics
//	wdlint watch workflows/
//
//	# Show recorded runs
//	wdlint history --since 24h
//
// Exit status is 0 when no findings fail the run, 1 when they do, and 2 on
// any other error.
package main

import (
	"errors"
	"fmt"
	"os"

	"wdlkit/wdl/pkg/cli"
)

func main() {
	cmd, opts := newRoot()
	err := cmd.Execute()
	opts.shutdown()
	var findings *cli.FindingsError
	if err != nil && !errors.As(err, &findings) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}
