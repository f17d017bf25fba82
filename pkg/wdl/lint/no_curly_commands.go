package lint

import (
	"fmt"

	"wdlkit/wdl/pkg/wdl/ast"
	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/syntax"
)

const noCurlyCommandsID = "NoCurlyCommands"

// NoCurlyCommands flags task command sections written with curly braces
// instead of heredoc delimiters.
type NoCurlyCommands struct{}

func (NoCurlyCommands) ID() string { return noCurlyCommandsID }

func (NoCurlyCommands) Description() string {
	return "Ensures that tasks use heredoc syntax in command sections."
}

func (NoCurlyCommands) Explanation() string {
	return "Curly command blocks are no longer considered idiomatic WDL. Idiomatic WDL code uses " +
		"heredoc command blocks instead. This is because curly command blocks create ambiguity " +
		"with Bash syntax."
}

func (NoCurlyCommands) Tags() TagSet { return NewTagSet(Clarity) }

func (NoCurlyCommands) Visitor() ast.Visitor[*diagnostic.Diagnostics] {
	return noCurlyCommandsVisitor{}
}

type noCurlyCommandsVisitor struct {
	ast.NopVisitor[*diagnostic.Diagnostics]
}

func (noCurlyCommandsVisitor) CommandSection(sink *diagnostic.Diagnostics, reason ast.VisitReason, section ast.CommandSection) {
	if reason == ast.Exit || section.IsHeredoc() {
		return
	}
	name := section.Parent().Name().Text()
	sink.Add(curlyCommands(name, section.Keyword().Span()))
}

func curlyCommands(task string, keyword syntax.Span) diagnostic.Diagnostic {
	return diagnostic.Warning(fmt.Sprintf("task `%s` uses curly braces in command section", task)).
		WithRule(noCurlyCommandsID).
		WithLabel("this command section uses curly braces", keyword).
		WithFix("instead of curly braces, use heredoc syntax (<<<>>>>) for command sections")
}
