// Package wdl provides entry points for parsing and linting Workflow
// Description Language (WDL) documents.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - syntax: lossless syntax tree, kinds, spans and line positions
// - parser: lexer and parser producing a syntax tree and syntax diagnostics
// - ast: typed view over the syntax tree and the visitor engine
// - diagnostic: diagnostic values, sinks and source rendering
// - lint: lint rules and the linter that schedules them
//
// # Basic Usage
//
//	res, err := wdl.LintFile(ctx, lint.New(), "hello.wdl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range res.Diagnostics() {
//	    diagnostic.Render(os.Stdout, res.Path, res.Source, d, 1)
//	}
//
// Lower-level access to the typed tree:
//
//	doc, diags := wdl.Parse(source)
//	for task := range doc.Tasks() {
//	    fmt.Println(task.Name().Text())
//	}
package wdl
