package ast

import "wdlkit/wdl/pkg/wdl/syntax"

// Ident is an identifier token.
type Ident struct{ tokenBase }

// CanCastIdent reports whether kind is an identifier.
func CanCastIdent(kind syntax.Kind) bool { return kind == syntax.Ident }

// CastIdent casts a token to an Ident.
func CastIdent(t syntax.Token) (Ident, bool) {
	if !CanCastIdent(t.Kind()) {
		return Ident{}, false
	}
	return Ident{tokenBase{t}}, true
}

// CommandText is a run of literal text inside a command section.
type CommandText struct{ tokenBase }

func (CommandText) isCommandPart() {}

// CanCastCommandText reports whether kind is literal command text.
func CanCastCommandText(kind syntax.Kind) bool { return kind == syntax.LiteralCommandText }

// CastCommandText casts a token to CommandText.
func CastCommandText(t syntax.Token) (CommandText, bool) {
	if !CanCastCommandText(t.Kind()) {
		return CommandText{}, false
	}
	return CommandText{tokenBase{t}}, true
}

// StringText is a run of literal text inside a string literal.
// Escape sequences are kept as written.
type StringText struct{ tokenBase }

func (StringText) isStringPart() {}

// CanCastStringText reports whether kind is literal string text.
func CanCastStringText(kind syntax.Kind) bool { return kind == syntax.LiteralStringText }

// CastStringText casts a token to StringText.
func CastStringText(t syntax.Token) (StringText, bool) {
	if !CanCastStringText(t.Kind()) {
		return StringText{}, false
	}
	return StringText{tokenBase{t}}, true
}

// Whitespace is a run of spaces, tabs and newlines.
type Whitespace struct{ tokenBase }

// CanCastWhitespace reports whether kind is whitespace.
func CanCastWhitespace(kind syntax.Kind) bool { return kind == syntax.Whitespace }

// CastWhitespace casts a token to Whitespace.
func CastWhitespace(t syntax.Token) (Whitespace, bool) {
	if !CanCastWhitespace(t.Kind()) {
		return Whitespace{}, false
	}
	return Whitespace{tokenBase{t}}, true
}

// Comment is a `#` comment up to (not including) the end of the line.
type Comment struct{ tokenBase }

// CanCastComment reports whether kind is a comment.
func CanCastComment(kind syntax.Kind) bool { return kind == syntax.Comment }

// CastComment casts a token to a Comment.
func CastComment(t syntax.Token) (Comment, bool) {
	if !CanCastComment(t.Kind()) {
		return Comment{}, false
	}
	return Comment{tokenBase{t}}, true
}
