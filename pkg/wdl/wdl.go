package wdl

import (
	"context"
	"fmt"

	"wdlkit/wdl/pkg/wdl/ast"
	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/lint"
	"wdlkit/wdl/pkg/wdl/parser"
)

// Parse parses WDL source and returns the typed document together with any
// syntax diagnostics. A document is returned even when there are errors.
func Parse(source string) (ast.Document, diagnostic.List) {
	tree, diags := parser.Parse(source)
	return ast.NewDocument(tree), diags
}

// ParseFile reads and parses a WDL file.
func ParseFile(path string) (ast.Document, diagnostic.List, error) {
	tree, diags, err := parser.NewParser().Parse(path)
	if err != nil {
		return ast.Document{}, nil, err
	}
	return ast.NewDocument(tree), diags, nil
}

// Result is the outcome of linting one source file.
type Result struct {
	Path   string
	Source string
	// Syntax holds parser diagnostics.
	Syntax diagnostic.List
	// Report is nil when the document has syntax errors; rules only run on
	// documents that parse cleanly.
	Report *lint.Report
}

// Diagnostics returns syntax and lint diagnostics together in source order.
func (r *Result) Diagnostics() diagnostic.List {
	all := append(diagnostic.List(nil), r.Syntax...)
	if r.Report != nil {
		all = append(all, r.Report.Diagnostics...)
	}
	all.Sort()
	return all
}

// HasErrors reports whether any diagnostic has error severity or a rule failed.
func (r *Result) HasErrors() bool {
	if r.Report != nil && r.Report.Failed() {
		return true
	}
	return r.Diagnostics().HasErrors()
}

// Lint parses source and runs the linter over it. A nil linter runs every
// built-in rule with default options.
func Lint(ctx context.Context, l *lint.Linter, path, source string) (*Result, error) {
	doc, diags := Parse(source)
	return lintDocument(ctx, l, path, doc, diags)
}

// LintFile reads path and lints it. Files larger than
// parser.DefaultMaxFileSize are rejected.
func LintFile(ctx context.Context, l *lint.Linter, path string) (*Result, error) {
	doc, diags, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return lintDocument(ctx, l, path, doc, diags)
}

func lintDocument(ctx context.Context, l *lint.Linter, path string, doc ast.Document, diags diagnostic.List) (*Result, error) {
	if l == nil {
		l = lint.New()
	}
	res := &Result{Path: path, Source: doc.Syntax().Tree().Source(), Syntax: diags}
	if diags.HasErrors() {
		return res, nil
	}
	report, err := l.Run(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to lint %s: %w", path, err)
	}
	res.Report = report
	return res, nil
}
