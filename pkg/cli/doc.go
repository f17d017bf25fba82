/*
Package cli provides the output and error helpers used by the wdlint command.

Output Formatting:

A Printer writes lint results, rule descriptors and run history either as
human-readable text with source context or as JSON for CI pipelines:

	p := cli.NewPrinter(os.Stdout, cli.FormatText, cli.WithColor(true))
	summary, err := p.PrintResults(results)

Exit Codes:

Commands return a *FindingsError when linting succeeded but produced
findings; ExitCode maps it to 1 and any other error to 2.

Signal Handling:

For graceful shutdown of watch mode on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
