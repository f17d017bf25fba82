package ast

import (
	"iter"
	"strings"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// Decl is a declaration: a BoundDecl or an UnboundDecl.
type Decl interface {
	Node
	Type() Type
	Name() Ident
	isDecl()
}

// CanCastDecl reports whether kind is a declaration.
func CanCastDecl(kind syntax.Kind) bool {
	return CanCastBoundDecl(kind) || CanCastUnboundDecl(kind)
}

// CastDecl casts a node to a Decl.
func CastDecl(n syntax.Node) (Decl, bool) {
	switch n.Kind() {
	case syntax.BoundDeclNode:
		return BoundDecl{nodeBase{n}}, true
	case syntax.UnboundDeclNode:
		return UnboundDecl{nodeBase{n}}, true
	}
	return nil, false
}

// BoundDecl is a declaration with a value, `Type name = expr`.
type BoundDecl struct{ nodeBase }

func (BoundDecl) isDecl()         {}
func (BoundDecl) isTaskItem()     {}
func (BoundDecl) isWorkflowItem() {}

// CanCastBoundDecl reports whether kind is a bound declaration.
func CanCastBoundDecl(kind syntax.Kind) bool { return kind == syntax.BoundDeclNode }

// CastBoundDecl casts a node to a BoundDecl.
func CastBoundDecl(n syntax.Node) (BoundDecl, bool) {
	if !CanCastBoundDecl(n.Kind()) {
		return BoundDecl{}, false
	}
	return BoundDecl{nodeBase{n}}, true
}

// Type returns the declared type.
func (d BoundDecl) Type() Type {
	return requireChild(d.node, CastType, "bound declaration", "type")
}

// Name returns the declared name.
func (d BoundDecl) Name() Ident { return requireName(d.node, "bound declaration") }

// Expr returns the bound value.
func (d BoundDecl) Expr() Expr {
	return requireChild(d.node, CastExpr, "bound declaration", "expression")
}

// UnboundDecl is a declaration without a value, `Type name`.
type UnboundDecl struct{ nodeBase }

func (UnboundDecl) isDecl() {}

// CanCastUnboundDecl reports whether kind is an unbound declaration.
func CanCastUnboundDecl(kind syntax.Kind) bool { return kind == syntax.UnboundDeclNode }

// CastUnboundDecl casts a node to an UnboundDecl.
func CastUnboundDecl(n syntax.Node) (UnboundDecl, bool) {
	if !CanCastUnboundDecl(n.Kind()) {
		return UnboundDecl{}, false
	}
	return UnboundDecl{nodeBase{n}}, true
}

// Type returns the declared type.
func (d UnboundDecl) Type() Type {
	return requireChild(d.node, CastType, "unbound declaration", "type")
}

// Name returns the declared name.
func (d UnboundDecl) Name() Ident { return requireName(d.node, "unbound declaration") }

// Type is a type annotation: a primitive type, Array, Map, Pair or a struct
// type reference, optionally followed by `?`.
type Type struct{ nodeBase }

// CanCastType reports whether kind is a type.
func CanCastType(kind syntax.Kind) bool {
	switch kind {
	case syntax.PrimitiveTypeNode,
		syntax.ArrayTypeNode,
		syntax.MapTypeNode,
		syntax.PairTypeNode,
		syntax.TypeRefNode:
		return true
	}
	return false
}

// CastType casts a node to a Type.
func CastType(n syntax.Node) (Type, bool) {
	if !CanCastType(n.Kind()) {
		return Type{}, false
	}
	return Type{nodeBase{n}}, true
}

// Kind returns the syntax kind of the type node.
func (t Type) Kind() syntax.Kind { return t.node.Kind() }

// IsOptional reports whether the type is followed by `?`.
func (t Type) IsOptional() bool {
	_, ok := t.node.FirstToken(syntax.QuestionMark)
	return ok
}

// IsNonEmpty reports whether an Array type is followed by `+`.
func (t Type) IsNonEmpty() bool {
	if t.node.Kind() != syntax.ArrayTypeNode {
		return false
	}
	_, ok := t.node.FirstToken(syntax.Plus)
	return ok
}

// TypeParameters returns the element types of Array, Map and Pair.
func (t Type) TypeParameters() iter.Seq[Type] {
	return children(t.node, CastType)
}

// String renders the type in normalized form, without trivia, e.g. "Map[String, Int]?".
func (t Type) String() string {
	var sb strings.Builder
	t.render(&sb)
	return sb.String()
}

func (t Type) render(sb *strings.Builder) {
	name := t.node.Child(0)
	sb.WriteString(name.Text())

	if t.node.Kind() == syntax.ArrayTypeNode ||
		t.node.Kind() == syntax.MapTypeNode ||
		t.node.Kind() == syntax.PairTypeNode {
		sb.WriteByte('[')
		i := 0
		for param := range t.TypeParameters() {
			if i > 0 {
				sb.WriteString(", ")
			}
			param.render(sb)
			i++
		}
		sb.WriteByte(']')
	}
	if t.IsNonEmpty() {
		sb.WriteByte('+')
	}
	if t.IsOptional() {
		sb.WriteByte('?')
	}
}
