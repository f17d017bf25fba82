package ast

import (
	"iter"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// CommandSection is a `command` section, delimited either by a heredoc
// (`<<<` ... `>>>`) or by curly braces.
type CommandSection struct{ nodeBase }

func (CommandSection) isTaskItem() {}

// CanCastCommandSection reports whether kind is a command section.
func CanCastCommandSection(kind syntax.Kind) bool { return kind == syntax.CommandSectionNode }

// CastCommandSection casts a node to a CommandSection.
func CastCommandSection(n syntax.Node) (CommandSection, bool) {
	if !CanCastCommandSection(n.Kind()) {
		return CommandSection{}, false
	}
	return CommandSection{nodeBase{n}}, true
}

// Parent returns the task owning the command section.
func (c CommandSection) Parent() TaskDefinition {
	return parentTask(c.node, "command section")
}

// Keyword returns the `command` keyword token.
func (c CommandSection) Keyword() syntax.Token {
	return requireToken(c.node, syntax.CommandKeyword, "command section", "keyword")
}

// IsHeredoc reports whether the section uses heredoc delimiters.
func (c CommandSection) IsHeredoc() bool {
	_, ok := c.node.FirstToken(syntax.OpenHeredoc)
	return ok
}

// Body returns the span between the opening and closing delimiters.
// For an unterminated section the body runs to the end of the section.
func (c CommandSection) Body() syntax.Span {
	opening, closing := syntax.OpenBrace, syntax.CloseBrace
	if c.IsHeredoc() {
		opening, closing = syntax.OpenHeredoc, syntax.CloseHeredoc
	}
	start := requireToken(c.node, opening, "command section", "opening delimiter").Span().End
	end := c.node.Span().End
	if t, ok := c.node.FirstToken(closing); ok {
		end = t.Span().Start
	}
	return syntax.NewSpan(start, end)
}

// Parts returns the text and placeholders of the command body in source order.
func (c CommandSection) Parts() iter.Seq[CommandPart] {
	return func(yield func(CommandPart) bool) {
		for e := range c.node.Children() {
			part, ok := castCommandPart(e)
			if ok && !yield(part) {
				return
			}
		}
	}
}

// Text returns the command body as a single text token. It succeeds only when
// the body is exactly one run of text, that is, it has no placeholders.
func (c CommandSection) Text() (CommandText, bool) {
	var text CommandText
	n := 0
	for part := range c.Parts() {
		n++
		t, ok := part.(CommandText)
		if !ok || n > 1 {
			return CommandText{}, false
		}
		text = t
	}
	return text, n == 1
}

// CommandPart is one part of a command body: CommandText or a Placeholder.
type CommandPart interface {
	Span() syntax.Span
	isCommandPart()
}

// CanCastCommandPart reports whether kind can be a command part.
func CanCastCommandPart(kind syntax.Kind) bool {
	return CanCastCommandText(kind) || CanCastPlaceholder(kind)
}

func castCommandPart(e syntax.Element) (CommandPart, bool) {
	switch e := e.(type) {
	case syntax.Token:
		if t, ok := CastCommandText(e); ok {
			return t, true
		}
	case syntax.Node:
		if p, ok := CastPlaceholder(e); ok {
			return p, true
		}
	}
	return nil, false
}

// Placeholder is an interpolated expression, `~{expr}` or `${expr}`, inside a
// command or string.
type Placeholder struct{ nodeBase }

func (Placeholder) isCommandPart() {}
func (Placeholder) isStringPart()  {}

// CanCastPlaceholder reports whether kind is a placeholder.
func CanCastPlaceholder(kind syntax.Kind) bool { return kind == syntax.PlaceholderNode }

// CastPlaceholder casts a node to a Placeholder.
func CastPlaceholder(n syntax.Node) (Placeholder, bool) {
	if !CanCastPlaceholder(n.Kind()) {
		return Placeholder{}, false
	}
	return Placeholder{nodeBase{n}}, true
}

// Opening returns the opening sequence, "~{" or "${".
func (p Placeholder) Opening() string {
	return requireToken(p.node, syntax.PlaceholderOpen, "placeholder", "opening").Text()
}

// Expr returns the interpolated expression.
func (p Placeholder) Expr() Expr {
	return requireChild(p.node, CastExpr, "placeholder", "expression")
}
