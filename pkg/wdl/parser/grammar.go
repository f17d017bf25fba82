package parser

import (
	"fmt"

	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/syntax"
)

// grammar is a recursive-descent parser that feeds a syntax.Builder.
// Trivia is attached lazily: it is flushed into whichever node is open when
// the next token is consumed or the next node is started, so nodes begin at
// their first significant token.
type grammar struct {
	lex   lexer
	pos   int
	b     *syntax.Builder
	diags diagnostic.List
}

func newGrammar(source string) *grammar {
	return &grammar{
		lex: lexer{src: source},
		b:   syntax.NewBuilder(source),
	}
}

// lookahead is a token that has been classified but not consumed.
type lookahead struct {
	kind  syntax.Kind
	start int
	len   int
}

func (g *grammar) peek() lookahead {
	start := g.lex.skipTrivia(g.pos)
	kind, n := g.lex.normal(start)
	return lookahead{kind: kind, start: start, len: n}
}

// peekNth looks n significant tokens ahead (0 is the next token).
func (g *grammar) peekNth(n int) syntax.Kind {
	pos := g.pos
	for i := 0; ; i++ {
		start := g.lex.skipTrivia(pos)
		kind, length := g.lex.normal(start)
		if i == n || kind == eof {
			return kind
		}
		pos = start + length
	}
}

func (g *grammar) at(kind syntax.Kind) bool {
	return g.peek().kind == kind
}

func (g *grammar) flushTrivia() {
	for {
		kind, n := g.lex.trivia(g.pos)
		if n == 0 {
			return
		}
		g.raw(kind, n)
	}
}

func (g *grammar) raw(kind syntax.Kind, n int) {
	g.b.Token(kind, n)
	g.pos += n
}

func (g *grammar) startNode(kind syntax.Kind) {
	g.flushTrivia()
	g.b.StartNode(kind)
}

func (g *grammar) checkpoint() syntax.Checkpoint {
	g.flushTrivia()
	return g.b.Checkpoint()
}

func (g *grammar) finishNode() {
	g.b.FinishNode()
}

func (g *grammar) bump() syntax.Kind {
	t := g.peek()
	g.bumpAs(t.kind)
	return t.kind
}

func (g *grammar) bumpAs(kind syntax.Kind) {
	t := g.peek()
	if t.kind == eof {
		panic("parser: bump at end of input")
	}
	g.flushTrivia()
	g.raw(kind, t.len)
}

func (g *grammar) eat(kind syntax.Kind) bool {
	if g.at(kind) {
		g.bump()
		return true
	}
	return false
}

func (g *grammar) expect(kind syntax.Kind, what string) bool {
	if g.eat(kind) {
		return true
	}
	g.errorAt(g.peek(), fmt.Sprintf("expected %s", what))
	return false
}

// expectName consumes an identifier. Keywords in name position are re-tagged as identifiers.
func (g *grammar) expectName(what string) bool {
	t := g.peek()
	if t.kind == syntax.Ident || t.kind.IsKeyword() {
		g.bumpAs(syntax.Ident)
		return true
	}
	g.errorAt(t, fmt.Sprintf("expected %s", what))
	return false
}

func (g *grammar) describe(t lookahead) string {
	if t.kind == eof {
		return "end of input"
	}
	return fmt.Sprintf("`%s`", g.lex.src[t.start:t.start+t.len])
}

func (g *grammar) errorAt(t lookahead, message string) {
	span := syntax.NewSpan(t.start, t.start+t.len)
	g.diags = append(g.diags, diagnostic.Error(fmt.Sprintf("%s, found %s", message, g.describe(t))).
		WithLabel("unexpected "+g.describe(t), span))
}

// recover wraps the next token in an error node so the tree stays lossless.
func (g *grammar) recover(message string) {
	t := g.peek()
	g.errorAt(t, message)
	if t.kind == eof {
		return
	}
	g.startNode(syntax.ErrorNode)
	g.bump()
	g.finishNode()
}

func (g *grammar) document() {
	g.b.StartNode(syntax.RootNode)

	if g.at(syntax.VersionKeyword) {
		g.versionStatement()
	} else {
		g.errorAt(g.peek(), "expected version statement")
	}

	for {
		switch g.peek().kind {
		case syntax.TaskKeyword:
			g.task()
		case syntax.WorkflowKeyword:
			g.workflow()
		case syntax.StructKeyword:
			g.structDef()
		case eof:
			g.flushTrivia()
			g.finishNode()
			return
		default:
			g.recover("expected task, workflow or struct definition")
		}
	}
}

func (g *grammar) versionStatement() {
	g.startNode(syntax.VersionStatementNode)
	g.bump()
	g.flushTrivia()
	if n := g.lex.version(g.pos); n > 0 {
		g.raw(syntax.Version, n)
	} else {
		g.errorAt(g.peek(), "expected version number")
	}
	g.finishNode()
}

func (g *grammar) task() {
	g.startNode(syntax.TaskDefinitionNode)
	g.bump()
	g.expectName("task name")
	if g.expect(syntax.OpenBrace, "`{`") {
		g.body(taskItems)
	}
	g.finishNode()
}

func (g *grammar) workflow() {
	g.startNode(syntax.WorkflowDefinitionNode)
	g.bump()
	g.expectName("workflow name")
	if g.expect(syntax.OpenBrace, "`{`") {
		g.body(workflowItems)
	}
	g.finishNode()
}

func (g *grammar) structDef() {
	g.startNode(syntax.StructDefinitionNode)
	g.bump()
	g.expectName("struct name")
	if g.expect(syntax.OpenBrace, "`{`") {
		g.body(structItems)
	}
	g.finishNode()
}

type itemSet int

const (
	taskItems itemSet = iota
	workflowItems
	structItems
)

// body parses definition items up to and including the closing brace.
func (g *grammar) body(items itemSet) {
	for {
		t := g.peek()
		switch {
		case t.kind == syntax.CloseBrace:
			g.bump()
			return
		case t.kind == eof:
			g.errorAt(t, "expected `}`")
			return
		case t.kind == syntax.InputKeyword && items != structItems:
			g.declSection(syntax.InputSectionNode, false)
		case t.kind == syntax.OutputKeyword && items != structItems:
			g.declSection(syntax.OutputSectionNode, true)
		case t.kind == syntax.CommandKeyword && items == taskItems:
			g.commandSection()
		case t.kind == syntax.RequirementsKeyword && items == taskItems:
			g.itemSection(syntax.RequirementsSectionNode, syntax.RequirementsItemNode)
		case t.kind == syntax.HintsKeyword && items != structItems:
			g.itemSection(syntax.HintsSectionNode, syntax.HintsItemNode)
		case t.kind == syntax.RuntimeKeyword && items == taskItems:
			g.itemSection(syntax.RuntimeSectionNode, syntax.RuntimeItemNode)
		case t.kind == syntax.MetaKeyword:
			g.metadataSection(syntax.MetadataSectionNode)
		case t.kind == syntax.ParameterMetaKeyword:
			g.metadataSection(syntax.ParameterMetadataSectionNode)
		case isTypeStart(t.kind):
			g.decl(items != structItems)
		default:
			g.recover("expected a section or declaration")
		}
	}
}

func (g *grammar) declSection(kind syntax.Kind, bound bool) {
	g.startNode(kind)
	g.bump()
	if g.expect(syntax.OpenBrace, "`{`") {
		for {
			t := g.peek()
			if t.kind == syntax.CloseBrace {
				g.bump()
				break
			}
			if t.kind == eof {
				g.errorAt(t, "expected `}`")
				break
			}
			if !isTypeStart(t.kind) {
				g.recover("expected a declaration")
				continue
			}
			g.decl(bound)
		}
	}
	g.finishNode()
}

// decl parses a declaration that must be bound when bound is true.
func (g *grammar) decl(bound bool) {
	cp := g.checkpoint()
	g.typ()
	g.expectName("declaration name")
	if g.at(syntax.Assignment) {
		g.b.StartNodeAt(cp, syntax.BoundDeclNode)
		g.bump()
		g.expr()
		g.finishNode()
		return
	}
	if bound {
		g.errorAt(g.peek(), "expected `=`")
	}
	g.b.StartNodeAt(cp, syntax.UnboundDeclNode)
	g.finishNode()
}

func isTypeStart(kind syntax.Kind) bool {
	switch kind {
	case syntax.Ident,
		syntax.BooleanTypeKeyword,
		syntax.IntTypeKeyword,
		syntax.FloatTypeKeyword,
		syntax.StringTypeKeyword,
		syntax.FileTypeKeyword,
		syntax.DirectoryTypeKeyword,
		syntax.ArrayTypeKeyword,
		syntax.MapTypeKeyword,
		syntax.PairTypeKeyword:
		return true
	}
	return false
}

func (g *grammar) typ() {
	switch g.peek().kind {
	case syntax.ArrayTypeKeyword:
		g.startNode(syntax.ArrayTypeNode)
		g.bump()
		if g.expect(syntax.OpenBracket, "`[`") {
			g.typ()
			g.expect(syntax.CloseBracket, "`]`")
		}
		g.eat(syntax.Plus)
	case syntax.MapTypeKeyword, syntax.PairTypeKeyword:
		kind := syntax.MapTypeNode
		if g.at(syntax.PairTypeKeyword) {
			kind = syntax.PairTypeNode
		}
		g.startNode(kind)
		g.bump()
		if g.expect(syntax.OpenBracket, "`[`") {
			g.typ()
			g.expect(syntax.Comma, "`,`")
			g.typ()
			g.expect(syntax.CloseBracket, "`]`")
		}
	case syntax.Ident:
		g.startNode(syntax.TypeRefNode)
		g.bump()
	default:
		if !isTypeStart(g.peek().kind) {
			g.errorAt(g.peek(), "expected a type")
			return
		}
		g.startNode(syntax.PrimitiveTypeNode)
		g.bump()
	}
	g.eat(syntax.QuestionMark)
	g.finishNode()
}

func (g *grammar) commandSection() {
	g.startNode(syntax.CommandSectionNode)
	g.bump()

	start := g.lex.skipTrivia(g.pos)
	heredoc := false
	switch {
	case len(g.lex.src)-start >= 3 && g.lex.src[start:start+3] == "<<<":
		g.flushTrivia()
		g.raw(syntax.OpenHeredoc, 3)
		heredoc = true
	case g.at(syntax.OpenBrace):
		g.bump()
	default:
		g.errorAt(g.peek(), "expected `<<<` or `{`")
		g.finishNode()
		return
	}

	for {
		if n := g.lex.commandText(g.pos, heredoc); n > 0 {
			g.raw(syntax.LiteralCommandText, n)
		}
		switch {
		case g.pos >= len(g.lex.src):
			g.errorAt(lookahead{kind: eof, start: g.pos}, "unterminated command section")
			g.finishNode()
			return
		case g.lex.placeholderAt(g.pos, !heredoc):
			g.placeholder()
		case heredoc:
			g.raw(syntax.CloseHeredoc, 3)
			g.finishNode()
			return
		default:
			g.raw(syntax.CloseBrace, 1)
			g.finishNode()
			return
		}
	}
}

func (g *grammar) placeholder() {
	g.b.StartNode(syntax.PlaceholderNode)
	g.raw(syntax.PlaceholderOpen, 2)
	g.expr()
	g.expect(syntax.CloseBrace, "`}`")
	g.finishNode()
}

func (g *grammar) itemSection(section, item syntax.Kind) {
	g.startNode(section)
	g.bump()
	if g.expect(syntax.OpenBrace, "`{`") {
		for {
			t := g.peek()
			switch {
			case t.kind == syntax.CloseBrace:
				g.bump()
				g.finishNode()
				return
			case t.kind == eof:
				g.errorAt(t, "expected `}`")
				g.finishNode()
				return
			case t.kind == syntax.Ident || t.kind.IsKeyword():
				g.startNode(item)
				g.expectName("item name")
				g.expect(syntax.Colon, "`:`")
				g.expr()
				g.finishNode()
			default:
				g.recover("expected an item")
			}
		}
	}
	g.finishNode()
}

func (g *grammar) metadataSection(kind syntax.Kind) {
	g.startNode(kind)
	g.bump()
	if g.expect(syntax.OpenBrace, "`{`") {
		g.metadataItems()
	}
	g.finishNode()
}

// metadataItems parses object items up to and including the closing brace.
func (g *grammar) metadataItems() {
	for {
		t := g.peek()
		switch {
		case t.kind == syntax.CloseBrace:
			g.bump()
			return
		case t.kind == eof:
			g.errorAt(t, "expected `}`")
			return
		case t.kind == syntax.Comma:
			g.bump()
		case t.kind == syntax.Ident || t.kind.IsKeyword():
			g.startNode(syntax.MetadataObjectItemNode)
			g.expectName("metadata key")
			g.expect(syntax.Colon, "`:`")
			g.metadataValue()
			g.finishNode()
		default:
			g.recover("expected a metadata key")
		}
	}
}

func (g *grammar) metadataValue() {
	t := g.peek()
	switch t.kind {
	case syntax.DoubleQuote, syntax.SingleQuote:
		g.stringLiteral()
	case syntax.Integer:
		g.literal(syntax.LiteralIntegerNode)
	case syntax.Float:
		g.literal(syntax.LiteralFloatNode)
	case syntax.Minus:
		kind := syntax.LiteralIntegerNode
		if g.peekNth(1) == syntax.Float {
			kind = syntax.LiteralFloatNode
		}
		g.startNode(kind)
		g.bump()
		if !g.eat(syntax.Integer) && !g.eat(syntax.Float) {
			g.errorAt(g.peek(), "expected a number")
		}
		g.finishNode()
	case syntax.TrueKeyword, syntax.FalseKeyword:
		g.literal(syntax.LiteralBooleanNode)
	case syntax.NullKeyword:
		g.literal(syntax.LiteralNullNode)
	case syntax.OpenBrace:
		g.startNode(syntax.MetadataObjectNode)
		g.bump()
		g.metadataItems()
		g.finishNode()
	case syntax.OpenBracket:
		g.startNode(syntax.MetadataArrayNode)
		g.bump()
		for {
			t := g.peek()
			if t.kind == syntax.CloseBracket {
				g.bump()
				break
			}
			if t.kind == eof {
				g.errorAt(t, "expected `]`")
				break
			}
			if t.kind == syntax.Comma {
				g.bump()
				continue
			}
			if isClosing(t.kind) {
				g.errorAt(t, "expected `]`")
				break
			}
			g.metadataValue()
		}
		g.finishNode()
	default:
		if isClosing(t.kind) {
			g.errorAt(t, "expected a metadata value")
			return
		}
		g.recover("expected a metadata value")
	}
}

func (g *grammar) literal(kind syntax.Kind) {
	g.startNode(kind)
	g.bump()
	g.finishNode()
}

func (g *grammar) stringLiteral() {
	g.startNode(syntax.LiteralStringNode)
	t := g.peek()
	g.bump()
	quote := g.lex.src[t.start]

	for {
		if n := g.lex.stringText(g.pos, quote); n > 0 {
			g.raw(syntax.LiteralStringText, n)
		}
		switch {
		case g.pos >= len(g.lex.src) || g.lex.src[g.pos] == '\n':
			g.errorAt(lookahead{kind: eof, start: g.pos}, "unterminated string")
			g.finishNode()
			return
		case g.lex.src[g.pos] == quote:
			g.raw(t.kind, 1)
			g.finishNode()
			return
		default:
			g.placeholder()
		}
	}
}

func isClosing(kind syntax.Kind) bool {
	switch kind {
	case eof, syntax.CloseBrace, syntax.CloseParen, syntax.CloseBracket, syntax.Comma:
		return true
	}
	return false
}

var binaryOps = map[syntax.Kind]struct {
	prec int
	node syntax.Kind
}{
	syntax.LogicalOr:    {1, syntax.LogicalOrExprNode},
	syntax.LogicalAnd:   {2, syntax.LogicalAndExprNode},
	syntax.Equal:        {3, syntax.EqualityExprNode},
	syntax.NotEqual:     {3, syntax.InequalityExprNode},
	syntax.Less:         {4, syntax.LessExprNode},
	syntax.LessEqual:    {4, syntax.LessEqualExprNode},
	syntax.Greater:      {4, syntax.GreaterExprNode},
	syntax.GreaterEqual: {4, syntax.GreaterEqualExprNode},
	syntax.Plus:         {5, syntax.AdditionExprNode},
	syntax.Minus:        {5, syntax.SubtractionExprNode},
	syntax.Asterisk:     {6, syntax.MultiplicationExprNode},
	syntax.Slash:        {6, syntax.DivisionExprNode},
	syntax.Percent:      {6, syntax.ModuloExprNode},
}

func (g *grammar) expr() {
	g.binary(1)
}

func (g *grammar) binary(minPrec int) {
	cp := g.checkpoint()
	g.unary()
	for {
		op, ok := binaryOps[g.peek().kind]
		if !ok || op.prec < minPrec {
			return
		}
		g.b.StartNodeAt(cp, op.node)
		g.bump()
		g.binary(op.prec + 1)
		g.finishNode()
	}
}

func (g *grammar) unary() {
	switch g.peek().kind {
	case syntax.Exclamation:
		g.startNode(syntax.LogicalNotExprNode)
		g.bump()
		g.unary()
		g.finishNode()
	case syntax.Minus:
		g.startNode(syntax.NegationExprNode)
		g.bump()
		g.unary()
		g.finishNode()
	default:
		g.postfix()
	}
}

func (g *grammar) postfix() {
	cp := g.checkpoint()
	if !g.primary() {
		return
	}
	for {
		switch g.peek().kind {
		case syntax.OpenBracket:
			g.b.StartNodeAt(cp, syntax.IndexExprNode)
			g.bump()
			g.expr()
			g.expect(syntax.CloseBracket, "`]`")
			g.finishNode()
		case syntax.Dot:
			g.b.StartNodeAt(cp, syntax.AccessExprNode)
			g.bump()
			g.expectName("member name")
			g.finishNode()
		default:
			return
		}
	}
}

func (g *grammar) primary() bool {
	t := g.peek()
	switch t.kind {
	case syntax.Ident:
		if g.peekNth(1) == syntax.OpenParen {
			g.call()
			return true
		}
		g.literal(syntax.NameRefNode)
	case syntax.Integer:
		g.literal(syntax.LiteralIntegerNode)
	case syntax.Float:
		g.literal(syntax.LiteralFloatNode)
	case syntax.TrueKeyword, syntax.FalseKeyword:
		g.literal(syntax.LiteralBooleanNode)
	case syntax.NoneKeyword:
		g.literal(syntax.LiteralNoneNode)
	case syntax.DoubleQuote, syntax.SingleQuote:
		g.stringLiteral()
	case syntax.OpenParen:
		g.startNode(syntax.ParenthesizedExprNode)
		g.bump()
		g.expr()
		g.expect(syntax.CloseParen, "`)`")
		g.finishNode()
	case syntax.OpenBracket:
		g.startNode(syntax.LiteralArrayNode)
		g.bump()
		g.list(syntax.CloseBracket, "`]`")
		g.finishNode()
	default:
		if isClosing(t.kind) {
			g.errorAt(t, "expected an expression")
		} else {
			g.recover("expected an expression")
		}
		return false
	}
	return true
}

func (g *grammar) call() {
	g.startNode(syntax.CallExprNode)
	g.bump()
	g.bump()
	g.list(syntax.CloseParen, "`)`")
	g.finishNode()
}

// list parses comma-separated expressions up to and including the closing token.
func (g *grammar) list(closing syntax.Kind, what string) {
	for {
		t := g.peek()
		if t.kind == closing {
			g.bump()
			return
		}
		if t.kind == eof {
			g.errorAt(t, "expected "+what)
			return
		}
		g.expr()
		if !g.eat(syntax.Comma) {
			g.expect(closing, what)
			return
		}
	}
}
