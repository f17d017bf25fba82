package ast

import (
	"fmt"
	"iter"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// Node is implemented by every typed node wrapper.
type Node interface {
	// Syntax returns the underlying syntax node.
	Syntax() syntax.Node
	// Span returns the byte range of the node.
	Span() syntax.Span
}

// Token is implemented by every typed token wrapper.
type Token interface {
	Syntax() syntax.Token
	Span() syntax.Span
	Text() string
}

type nodeBase struct {
	node syntax.Node
}

// Syntax returns the underlying syntax node.
func (b nodeBase) Syntax() syntax.Node { return b.node }

// Span returns the byte range of the node.
func (b nodeBase) Span() syntax.Span { return b.node.Span() }

// Text returns the source text of the node.
func (b nodeBase) Text() string { return b.node.Text() }

type tokenBase struct {
	token syntax.Token
}

// Syntax returns the underlying syntax token.
func (b tokenBase) Syntax() syntax.Token { return b.token }

// Span returns the byte range of the token.
func (b tokenBase) Span() syntax.Span {
	if b.token.IsZero() {
		return syntax.Span{}
	}
	return b.token.Span()
}

// Text returns the raw source text of the token.
func (b tokenBase) Text() string {
	if b.token.IsZero() {
		return ""
	}
	return b.token.Text()
}

// InvariantViolation reports a node whose shape contradicts the grammar it
// was cast to, such as a task without a name. It is raised with panic by
// accessors; well-formed trees from the parser never produce one.
type InvariantViolation struct {
	Concept string      // Concept being accessed, e.g. "task definition"
	Missing string      // Required child that was absent, e.g. "name"
	Span    syntax.Span // Span of the malformed node
}

// Error implements the error interface.
func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("ast: %s at %s has no %s", e.Concept, e.Span, e.Missing)
}

func violate(n syntax.Node, concept, missing string) {
	panic(&InvariantViolation{Concept: concept, Missing: missing, Span: n.Span()})
}

// children projects the child nodes of n that cast to T, in source order.
// The sequence is lazy and may be iterated more than once.
func children[T any](n syntax.Node, cast func(syntax.Node) (T, bool)) iter.Seq[T] {
	return func(yield func(T) bool) {
		for c := range n.ChildNodes() {
			if v, ok := cast(c); ok {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// child returns the first child of n that casts to T.
func child[T any](n syntax.Node, cast func(syntax.Node) (T, bool)) (T, bool) {
	for v := range children(n, cast) {
		return v, true
	}
	var zero T
	return zero, false
}

// requireChild returns the first child of n that casts to T, or panics.
func requireChild[T any](n syntax.Node, cast func(syntax.Node) (T, bool), concept, missing string) T {
	v, ok := child(n, cast)
	if !ok {
		violate(n, concept, missing)
	}
	return v
}

func requireToken(n syntax.Node, kind syntax.Kind, concept, missing string) syntax.Token {
	t, ok := n.FirstToken(kind)
	if !ok {
		violate(n, concept, missing)
	}
	return t
}

func requireName(n syntax.Node, concept string) Ident {
	return Ident{tokenBase{requireToken(n, syntax.Ident, concept, "name")}}
}
