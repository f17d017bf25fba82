package ast

import (
	"iter"
	"strconv"
	"strings"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// Expr is an expression. The concrete types are the literals (see Literal),
// NameRef, CallExpr, ParenthesizedExpr, IndexExpr, AccessExpr, UnaryExpr and BinaryExpr.
type Expr interface {
	Node
	isExpr()
}

// CanCastExpr reports whether kind is an expression.
func CanCastExpr(kind syntax.Kind) bool {
	switch kind {
	case syntax.NameRefNode,
		syntax.CallExprNode,
		syntax.ParenthesizedExprNode,
		syntax.IndexExprNode,
		syntax.AccessExprNode:
		return true
	}
	return CanCastLiteral(kind) || CanCastUnaryExpr(kind) || CanCastBinaryExpr(kind)
}

// CastExpr casts a node to an Expr.
func CastExpr(n syntax.Node) (Expr, bool) {
	switch n.Kind() {
	case syntax.NameRefNode:
		return NameRef{nodeBase{n}}, true
	case syntax.CallExprNode:
		return CallExpr{nodeBase{n}}, true
	case syntax.ParenthesizedExprNode:
		return ParenthesizedExpr{nodeBase{n}}, true
	case syntax.IndexExprNode:
		return IndexExpr{nodeBase{n}}, true
	case syntax.AccessExprNode:
		return AccessExpr{nodeBase{n}}, true
	}
	if CanCastUnaryExpr(n.Kind()) {
		return UnaryExpr{nodeBase{n}}, true
	}
	if CanCastBinaryExpr(n.Kind()) {
		return BinaryExpr{nodeBase{n}}, true
	}
	if lit, ok := CastLiteral(n); ok {
		return lit, true
	}
	return nil, false
}

// Literal is a literal expression: LiteralBoolean, LiteralInteger,
// LiteralFloat, LiteralString, LiteralNone or LiteralArray.
type Literal interface {
	Expr
	isLiteral()
}

// CanCastLiteral reports whether kind is a literal expression.
func CanCastLiteral(kind syntax.Kind) bool {
	switch kind {
	case syntax.LiteralBooleanNode,
		syntax.LiteralIntegerNode,
		syntax.LiteralFloatNode,
		syntax.LiteralStringNode,
		syntax.LiteralNoneNode,
		syntax.LiteralArrayNode:
		return true
	}
	return false
}

// CastLiteral casts a node to a Literal.
func CastLiteral(n syntax.Node) (Literal, bool) {
	switch n.Kind() {
	case syntax.LiteralBooleanNode:
		return LiteralBoolean{nodeBase{n}}, true
	case syntax.LiteralIntegerNode:
		return LiteralInteger{nodeBase{n}}, true
	case syntax.LiteralFloatNode:
		return LiteralFloat{nodeBase{n}}, true
	case syntax.LiteralStringNode:
		return LiteralString{nodeBase{n}}, true
	case syntax.LiteralNoneNode:
		return LiteralNone{nodeBase{n}}, true
	case syntax.LiteralArrayNode:
		return LiteralArray{nodeBase{n}}, true
	}
	return nil, false
}

// LiteralBoolean is `true` or `false`.
type LiteralBoolean struct{ nodeBase }

func (LiteralBoolean) isExpr()          {}
func (LiteralBoolean) isLiteral()       {}
func (LiteralBoolean) isMetadataValue() {}

// Value returns the boolean value.
func (l LiteralBoolean) Value() bool {
	if _, ok := l.node.FirstToken(syntax.TrueKeyword); ok {
		return true
	}
	requireToken(l.node, syntax.FalseKeyword, "boolean literal", "value")
	return false
}

// LiteralInteger is an integer literal. In metadata it may carry a leading `-`.
type LiteralInteger struct{ nodeBase }

func (LiteralInteger) isExpr()          {}
func (LiteralInteger) isLiteral()       {}
func (LiteralInteger) isMetadataValue() {}

// Value parses the literal. It fails when the value overflows int64.
func (l LiteralInteger) Value() (int64, error) {
	return strconv.ParseInt(numberText(l.node), 0, 64)
}

// LiteralFloat is a floating point literal. In metadata it may carry a leading `-`.
type LiteralFloat struct{ nodeBase }

func (LiteralFloat) isExpr()          {}
func (LiteralFloat) isLiteral()       {}
func (LiteralFloat) isMetadataValue() {}

// Value parses the literal.
func (l LiteralFloat) Value() (float64, error) {
	return strconv.ParseFloat(numberText(l.node), 64)
}

// numberText joins the sign and digits of a numeric literal, dropping trivia.
func numberText(n syntax.Node) string {
	var sb strings.Builder
	for t := range n.ChildTokens() {
		if !t.Kind().IsTrivia() {
			sb.WriteString(t.Text())
		}
	}
	return sb.String()
}

// LiteralString is a quoted string, possibly containing placeholders.
type LiteralString struct{ nodeBase }

func (LiteralString) isExpr()          {}
func (LiteralString) isLiteral()       {}
func (LiteralString) isMetadataValue() {}

// Quote returns the quote character, '"' or '\''.
func (l LiteralString) Quote() byte {
	for t := range l.node.ChildTokens() {
		switch t.Kind() {
		case syntax.DoubleQuote:
			return '"'
		case syntax.SingleQuote:
			return '\''
		}
	}
	violate(l.node, "string literal", "quote")
	return 0
}

// Parts returns the text and placeholders of the string in source order.
func (l LiteralString) Parts() iter.Seq[StringPart] {
	return func(yield func(StringPart) bool) {
		for e := range l.node.Children() {
			var part StringPart
			switch e := e.(type) {
			case syntax.Token:
				if t, ok := CastStringText(e); ok {
					part = t
				}
			case syntax.Node:
				if p, ok := CastPlaceholder(e); ok {
					part = p
				}
			}
			if part != nil && !yield(part) {
				return
			}
		}
	}
}

// Text returns the string contents as a single text token when the string has
// no placeholders. The empty string yields a zero StringText whose Text is "".
func (l LiteralString) Text() (StringText, bool) {
	var text StringText
	for part := range l.Parts() {
		t, ok := part.(StringText)
		if !ok || !text.token.IsZero() {
			return StringText{}, false
		}
		text = t
	}
	return text, true
}

// StringPart is one part of a string literal: StringText or a Placeholder.
type StringPart interface {
	Span() syntax.Span
	isStringPart()
}

// LiteralNone is the `None` literal.
type LiteralNone struct{ nodeBase }

func (LiteralNone) isExpr()    {}
func (LiteralNone) isLiteral() {}

// LiteralArray is an array literal, `[a, b, c]`.
type LiteralArray struct{ nodeBase }

func (LiteralArray) isExpr()    {}
func (LiteralArray) isLiteral() {}

// Elements returns the element expressions.
func (l LiteralArray) Elements() iter.Seq[Expr] {
	return children(l.node, CastExpr)
}

// NameRef is a reference to a name.
type NameRef struct{ nodeBase }

func (NameRef) isExpr() {}

// Name returns the referenced name.
func (r NameRef) Name() Ident { return requireName(r.node, "name reference") }

// CallExpr is a call to a standard library function, `f(a, b)`.
type CallExpr struct{ nodeBase }

func (CallExpr) isExpr() {}

// Target returns the name of the called function.
func (c CallExpr) Target() Ident { return requireName(c.node, "call expression") }

// Arguments returns the argument expressions.
func (c CallExpr) Arguments() iter.Seq[Expr] {
	return children(c.node, CastExpr)
}

// ParenthesizedExpr is an expression in parentheses.
type ParenthesizedExpr struct{ nodeBase }

func (ParenthesizedExpr) isExpr() {}

// Inner returns the enclosed expression.
func (p ParenthesizedExpr) Inner() Expr {
	return requireChild(p.node, CastExpr, "parenthesized expression", "expression")
}

// IndexExpr is an index operation, `target[index]`.
type IndexExpr struct{ nodeBase }

func (IndexExpr) isExpr() {}

// Operands returns the indexed expression and the index.
func (e IndexExpr) Operands() (Expr, Expr) {
	return operands(e.node, "index expression")
}

// AccessExpr is a member access, `target.name`.
type AccessExpr struct{ nodeBase }

func (AccessExpr) isExpr() {}

// Target returns the accessed expression.
func (e AccessExpr) Target() Expr {
	return requireChild(e.node, CastExpr, "access expression", "target")
}

// Member returns the accessed member name.
func (e AccessExpr) Member() Ident { return requireName(e.node, "access expression") }

// UnaryExpr is a logical not (`!x`) or a negation (`-x`).
type UnaryExpr struct{ nodeBase }

func (UnaryExpr) isExpr() {}

// CanCastUnaryExpr reports whether kind is a unary expression.
func CanCastUnaryExpr(kind syntax.Kind) bool {
	return kind == syntax.LogicalNotExprNode || kind == syntax.NegationExprNode
}

// Operator returns the operator token.
func (e UnaryExpr) Operator() syntax.Token {
	return operator(e.node, "unary expression")
}

// Operand returns the operand.
func (e UnaryExpr) Operand() Expr {
	return requireChild(e.node, CastExpr, "unary expression", "operand")
}

// BinaryExpr is an infix operation such as `a + b` or `a && b`.
type BinaryExpr struct{ nodeBase }

func (BinaryExpr) isExpr() {}

// CanCastBinaryExpr reports whether kind is a binary expression.
func CanCastBinaryExpr(kind syntax.Kind) bool {
	return kind >= syntax.LogicalOrExprNode && kind <= syntax.ModuloExprNode
}

// Kind returns the syntax kind, which identifies the operation.
func (e BinaryExpr) Kind() syntax.Kind { return e.node.Kind() }

// Operator returns the operator token.
func (e BinaryExpr) Operator() syntax.Token {
	return operator(e.node, "binary expression")
}

// Operands returns the left and right operands.
func (e BinaryExpr) Operands() (Expr, Expr) {
	return operands(e.node, "binary expression")
}

func operands(n syntax.Node, concept string) (Expr, Expr) {
	var exprs [2]Expr
	i := 0
	for e := range children(n, CastExpr) {
		if i == 2 {
			break
		}
		exprs[i] = e
		i++
	}
	if i < 2 {
		violate(n, concept, "operand")
	}
	return exprs[0], exprs[1]
}

func operator(n syntax.Node, concept string) syntax.Token {
	for t := range n.ChildTokens() {
		if !t.Kind().IsTrivia() {
			return t
		}
	}
	violate(n, concept, "operator")
	return syntax.Token{}
}
