package parser

import (
	"strings"
	"unicode/utf8"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// eof is returned by the lexer at the end of input. It is never added to a tree.
const eof syntax.Kind = 0xFFFF

// lexer classifies tokens at a byte offset. It is stateless: the grammar
// decides which mode (normal, string, command, version) applies at each offset.
type lexer struct {
	src string
}

// trivia returns the whitespace or comment token at pos, or length 0.
func (l *lexer) trivia(pos int) (syntax.Kind, int) {
	if pos >= len(l.src) {
		return eof, 0
	}
	switch c := l.src[pos]; {
	case isSpace(c):
		n := 1
		for pos+n < len(l.src) && isSpace(l.src[pos+n]) {
			n++
		}
		return syntax.Whitespace, n
	case c == '#':
		n := strings.IndexByte(l.src[pos:], '\n')
		if n < 0 {
			n = len(l.src) - pos
		}
		return syntax.Comment, n
	}
	return eof, 0
}

// skipTrivia returns the offset of the first non-trivia byte at or after pos.
func (l *lexer) skipTrivia(pos int) int {
	for {
		_, n := l.trivia(pos)
		if n == 0 {
			return pos
		}
		pos += n
	}
}

// normal lexes one token in expression/declaration context.
func (l *lexer) normal(pos int) (syntax.Kind, int) {
	if pos >= len(l.src) {
		return eof, 0
	}
	rest := l.src[pos:]
	c := rest[0]

	switch {
	case isIdentStart(c):
		n := 1
		for n < len(rest) && isIdentPart(rest[n]) {
			n++
		}
		return syntax.LookupKeyword(rest[:n]), n
	case isDigit(c):
		return l.number(rest)
	}

	for _, op := range twoCharOps {
		if strings.HasPrefix(rest, op.text) {
			return op.kind, len(op.text)
		}
	}
	if k, ok := oneCharOps[c]; ok {
		return k, 1
	}

	_, n := utf8.DecodeRuneInString(rest)
	return syntax.Unknown, n
}

func (l *lexer) number(rest string) (syntax.Kind, int) {
	n := 0
	for n < len(rest) && isDigit(rest[n]) {
		n++
	}
	kind := syntax.Integer
	if n+1 < len(rest) && rest[n] == '.' && isDigit(rest[n+1]) {
		kind = syntax.Float
		n++
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
	}
	if n < len(rest) && (rest[n] == 'e' || rest[n] == 'E') {
		m := n + 1
		if m < len(rest) && (rest[m] == '+' || rest[m] == '-') {
			m++
		}
		if m < len(rest) && isDigit(rest[m]) {
			for m < len(rest) && isDigit(rest[m]) {
				m++
			}
			kind = syntax.Float
			n = m
		}
	}
	return kind, n
}

// version lexes the version number following the version keyword.
func (l *lexer) version(pos int) int {
	n := 0
	for pos+n < len(l.src) {
		c := l.src[pos+n]
		if !isIdentPart(c) && c != '.' && c != '-' {
			break
		}
		n++
	}
	return n
}

// placeholderAt reports whether a placeholder opens at pos.
func (l *lexer) placeholderAt(pos int, allowDollar bool) bool {
	rest := l.src[pos:]
	return strings.HasPrefix(rest, "~{") || (allowDollar && strings.HasPrefix(rest, "${"))
}

// stringText returns the length of literal string text starting at pos.
// Text stops at the closing quote, a placeholder, a newline or end of input.
func (l *lexer) stringText(pos int, quote byte) int {
	n := 0
	for pos+n < len(l.src) {
		c := l.src[pos+n]
		if c == quote || c == '\n' || l.placeholderAt(pos+n, true) {
			break
		}
		if c == '\\' && pos+n+1 < len(l.src) && l.src[pos+n+1] != '\n' {
			n += 2
			continue
		}
		n++
	}
	return n
}

// commandText returns the length of command text starting at pos.
// Text stops at the closing delimiter, a placeholder or end of input.
func (l *lexer) commandText(pos int, heredoc bool) int {
	n := 0
	for pos+n < len(l.src) {
		rest := l.src[pos+n:]
		if heredoc && strings.HasPrefix(rest, ">>>") {
			break
		}
		if !heredoc && rest[0] == '}' {
			break
		}
		if l.placeholderAt(pos+n, !heredoc) {
			break
		}
		if rest[0] == '\\' && len(rest) > 1 {
			n += 2
			continue
		}
		n++
	}
	return n
}

type opToken struct {
	text string
	kind syntax.Kind
}

var twoCharOps = []opToken{
	{"==", syntax.Equal},
	{"!=", syntax.NotEqual},
	{"<=", syntax.LessEqual},
	{">=", syntax.GreaterEqual},
	{"&&", syntax.LogicalAnd},
	{"||", syntax.LogicalOr},
}

var oneCharOps = map[byte]syntax.Kind{
	'{':  syntax.OpenBrace,
	'}':  syntax.CloseBrace,
	'(':  syntax.OpenParen,
	')':  syntax.CloseParen,
	'[':  syntax.OpenBracket,
	']':  syntax.CloseBracket,
	':':  syntax.Colon,
	',':  syntax.Comma,
	'.':  syntax.Dot,
	'=':  syntax.Assignment,
	'?':  syntax.QuestionMark,
	'+':  syntax.Plus,
	'-':  syntax.Minus,
	'*':  syntax.Asterisk,
	'/':  syntax.Slash,
	'%':  syntax.Percent,
	'!':  syntax.Exclamation,
	'<':  syntax.Less,
	'>':  syntax.Greater,
	'"':  syntax.DoubleQuote,
	'\'': syntax.SingleQuote,
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
