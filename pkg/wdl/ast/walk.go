package ast

import (
	"context"
	"iter"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// Event is one step of a depth-first walk. Nodes produce an Enter event and,
// after all of their descendants, an Exit event. Tokens that carry a concept
// (command text, string text, whitespace and comments) produce a single Enter
// event; other tokens produce none.
type Event struct {
	Reason  VisitReason
	Element syntax.Element
}

// Events returns the depth-first event stream of a document in source order.
// Every node's Enter and Exit events bracket the events of its descendants, so
// the events of one sibling complete before the next sibling is entered.
func Events(doc Document) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		walk(doc.Syntax(), yield)
	}
}

func walk(n syntax.Node, yield func(Event) bool) bool {
	if !yield(Event{Reason: Enter, Element: n}) {
		return false
	}
	for c := range n.Children() {
		switch c := c.(type) {
		case syntax.Node:
			if !walk(c, yield) {
				return false
			}
		case syntax.Token:
			if hasTokenConcept(c.Kind()) && !yield(Event{Reason: Enter, Element: c}) {
				return false
			}
		}
	}
	return yield(Event{Reason: Exit, Element: n})
}

func hasTokenConcept(kind syntax.Kind) bool {
	switch kind {
	case syntax.LiteralCommandText, syntax.LiteralStringText, syntax.Whitespace, syntax.Comment:
		return true
	}
	return false
}

// Dispatch delivers one event to the visitor callback for the most specific
// concept of its element. Elements without a concept are ignored.
//
// Literals that are metadata values are reported through the metadata
// callbacks of their parent and never as Expr.
func Dispatch[S any](v Visitor[S], state S, ev Event) {
	if t, ok := ev.Element.(syntax.Token); ok {
		dispatchToken(v, state, t)
		return
	}
	n := ev.Element.(syntax.Node)
	r := ev.Reason

	switch n.Kind() {
	case syntax.RootNode:
		doc := Document{nodeBase{n}}
		v.Document(state, r, doc, doc.SupportedVersion())
	case syntax.VersionStatementNode:
		v.VersionStatement(state, r, VersionStatement{nodeBase{n}})
	case syntax.TaskDefinitionNode:
		v.TaskDefinition(state, r, TaskDefinition{nodeBase{n}})
	case syntax.WorkflowDefinitionNode:
		v.WorkflowDefinition(state, r, WorkflowDefinition{nodeBase{n}})
	case syntax.StructDefinitionNode:
		v.StructDefinition(state, r, StructDefinition{nodeBase{n}})
	case syntax.InputSectionNode:
		v.InputSection(state, r, InputSection{nodeBase{n}})
	case syntax.OutputSectionNode:
		v.OutputSection(state, r, OutputSection{nodeBase{n}})
	case syntax.CommandSectionNode:
		v.CommandSection(state, r, CommandSection{nodeBase{n}})
	case syntax.RequirementsSectionNode:
		v.RequirementsSection(state, r, RequirementsSection{nodeBase{n}})
	case syntax.RequirementsItemNode:
		v.RequirementsItem(state, r, RequirementsItem{nodeBase{n}})
	case syntax.HintsSectionNode:
		v.HintsSection(state, r, HintsSection{nodeBase{n}})
	case syntax.HintsItemNode:
		v.HintsItem(state, r, HintsItem{nodeBase{n}})
	case syntax.RuntimeSectionNode:
		v.RuntimeSection(state, r, RuntimeSection{nodeBase{n}})
	case syntax.RuntimeItemNode:
		v.RuntimeItem(state, r, RuntimeItem{nodeBase{n}})
	case syntax.MetadataSectionNode:
		v.MetadataSection(state, r, MetadataSection{nodeBase{n}})
	case syntax.ParameterMetadataSectionNode:
		v.ParameterMetadataSection(state, r, ParameterMetadataSection{nodeBase{n}})
	case syntax.MetadataObjectItemNode:
		v.MetadataObjectItem(state, r, MetadataObjectItem{nodeBase{n}})
	case syntax.MetadataObjectNode:
		v.MetadataObject(state, r, MetadataObject{nodeBase{n}})
	case syntax.MetadataArrayNode:
		v.MetadataArray(state, r, MetadataArray{nodeBase{n}})
	case syntax.BoundDeclNode:
		v.BoundDecl(state, r, BoundDecl{nodeBase{n}})
	case syntax.UnboundDeclNode:
		v.UnboundDecl(state, r, UnboundDecl{nodeBase{n}})
	case syntax.PlaceholderNode:
		v.Placeholder(state, r, Placeholder{nodeBase{n}})
	default:
		if isMetadataLiteral(n) {
			return
		}
		if expr, ok := CastExpr(n); ok {
			v.Expr(state, r, expr)
		}
	}
}

func dispatchToken[S any](v Visitor[S], state S, t syntax.Token) {
	switch t.Kind() {
	case syntax.LiteralCommandText:
		v.CommandText(state, CommandText{tokenBase{t}})
	case syntax.LiteralStringText:
		v.StringText(state, StringText{tokenBase{t}})
	case syntax.Whitespace:
		v.Whitespace(state, Whitespace{tokenBase{t}})
	case syntax.Comment:
		v.Comment(state, Comment{tokenBase{t}})
	}
}

// isMetadataLiteral reports whether n is a literal used as a metadata value.
func isMetadataLiteral(n syntax.Node) bool {
	p, ok := n.Parent()
	if !ok {
		return false
	}
	return p.Kind() == syntax.MetadataObjectItemNode || p.Kind() == syntax.MetadataArrayNode
}

// Visit walks the document once, delivering every event to v.
// A panic raised by a callback (such as an *InvariantViolation) aborts the walk.
func Visit[S any](doc Document, state S, v Visitor[S]) {
	for ev := range Events(doc) {
		Dispatch(v, state, ev)
	}
}

// VisitContext is like Visit but stops between events once ctx is done,
// returning the context's error.
func VisitContext[S any](ctx context.Context, doc Document, state S, v Visitor[S]) error {
	for ev := range Events(doc) {
		if err := ctx.Err(); err != nil {
			return err
		}
		Dispatch(v, state, ev)
	}
	return nil
}

// Listener consumes walk events.
type Listener func(Event)

// Bind returns a listener that dispatches events to v with its own state.
func Bind[S any](v Visitor[S], state S) Listener {
	return func(ev Event) {
		Dispatch(v, state, ev)
	}
}

// Broadcast walks the document once and delivers each event to every
// listener in order. Each listener carries its own state, so listeners
// observe the same walk without sharing anything mutable.
func Broadcast(doc Document, listeners ...Listener) {
	for ev := range Events(doc) {
		for _, l := range listeners {
			l(ev)
		}
	}
}

// BroadcastContext is like Broadcast but stops between events once ctx is
// done, returning the context's error.
func BroadcastContext(ctx context.Context, doc Document, listeners ...Listener) error {
	for ev := range Events(doc) {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, l := range listeners {
			l(ev)
		}
	}
	return nil
}
