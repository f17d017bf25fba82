package syntax

import (
	"fmt"
	"iter"
)

const noParent = -1

type elementRef struct {
	token bool
	index int32
}

type nodeData struct {
	kind     Kind
	span     Span
	parent   int32
	children []elementRef
}

type tokenData struct {
	kind   Kind
	span   Span
	parent int32
}

// Tree is an immutable, lossless syntax tree stored in an arena.
// Parent and child links are indexes into the arena, so no element owns its parent.
// A Tree is never modified after Builder.Finish returns it and may be shared
// between goroutines without locking.
type Tree struct {
	source string
	nodes  []nodeData
	tokens []tokenData
	root   int32
}

// Source returns the text the tree was built from.
func (t *Tree) Source() string {
	return t.source
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return Node{tree: t, index: t.root}
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// TokenCount returns the number of tokens in the tree.
func (t *Tree) TokenCount() int {
	return len(t.tokens)
}

// Element is either a Node or a Token.
type Element interface {
	Kind() Kind
	Span() Span
	Text() string
	isElement()
}

// Node is a handle to an interior node of a Tree.
// Copying a Node is cheap and never affects the tree.
type Node struct {
	tree  *Tree
	index int32
}

func (Node) isElement() {}

// IsZero returns true for the zero Node, which refers to no tree.
func (n Node) IsZero() bool {
	return n.tree == nil
}

// Tree returns the tree the node belongs to.
func (n Node) Tree() *Tree {
	return n.tree
}

func (n Node) data() *nodeData {
	return &n.tree.nodes[n.index]
}

// Kind returns the kind of the node.
func (n Node) Kind() Kind {
	return n.data().kind
}

// Span returns the byte range covered by the node, including trivia it contains.
func (n Node) Span() Span {
	return n.data().span
}

// Text returns the source text covered by the node.
func (n Node) Text() string {
	s := n.Span()
	return n.tree.source[s.Start:s.End]
}

// Parent returns the parent node. The root node has no parent.
func (n Node) Parent() (Node, bool) {
	p := n.data().parent
	if p == noParent {
		return Node{}, false
	}
	return Node{tree: n.tree, index: p}, true
}

// ChildCount returns the number of direct children (nodes and tokens).
func (n Node) ChildCount() int {
	return len(n.data().children)
}

// Child returns the i-th direct child.
func (n Node) Child(i int) Element {
	return n.element(n.data().children[i])
}

func (n Node) element(ref elementRef) Element {
	if ref.token {
		return Token{tree: n.tree, index: ref.index}
	}
	return Node{tree: n.tree, index: ref.index}
}

// Children returns the direct children in source order, nodes and tokens interleaved.
func (n Node) Children() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for _, ref := range n.data().children {
			if !yield(n.element(ref)) {
				return
			}
		}
	}
}

// ChildNodes returns the direct child nodes in source order.
func (n Node) ChildNodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, ref := range n.data().children {
			if ref.token {
				continue
			}
			if !yield(Node{tree: n.tree, index: ref.index}) {
				return
			}
		}
	}
}

// ChildTokens returns the direct child tokens in source order.
func (n Node) ChildTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for _, ref := range n.data().children {
			if !ref.token {
				continue
			}
			if !yield(Token{tree: n.tree, index: ref.index}) {
				return
			}
		}
	}
}

// FirstToken returns the first direct child token of the given kind.
func (n Node) FirstToken(kind Kind) (Token, bool) {
	for t := range n.ChildTokens() {
		if t.Kind() == kind {
			return t, true
		}
	}
	return Token{}, false
}

// FirstNode returns the first direct child node accepted by match.
func (n Node) FirstNode(match func(Kind) bool) (Node, bool) {
	for c := range n.ChildNodes() {
		if match(c.Kind()) {
			return c, true
		}
	}
	return Node{}, false
}

// Ancestors returns the parent chain of the node, nearest first.
func (n Node) Ancestors() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		cur := n
		for {
			p, ok := cur.Parent()
			if !ok || !yield(p) {
				return
			}
			cur = p
		}
	}
}

// String returns the kind and span of the node.
func (n Node) String() string {
	if n.IsZero() {
		return "<nil node>"
	}
	return fmt.Sprintf("%s@%s", n.Kind(), n.Span())
}

// Token is a handle to a leaf of a Tree.
type Token struct {
	tree  *Tree
	index int32
}

func (Token) isElement() {}

// IsZero returns true for the zero Token.
func (t Token) IsZero() bool {
	return t.tree == nil
}

func (t Token) data() *tokenData {
	return &t.tree.tokens[t.index]
}

// Kind returns the kind of the token.
func (t Token) Kind() Kind {
	return t.data().kind
}

// Span returns the byte range of the token.
func (t Token) Span() Span {
	return t.data().span
}

// Text returns the raw source text of the token.
func (t Token) Text() string {
	s := t.Span()
	return t.tree.source[s.Start:s.End]
}

// Parent returns the node containing the token.
func (t Token) Parent() Node {
	return Node{tree: t.tree, index: t.data().parent}
}

// String returns the kind, span and text of the token.
func (t Token) String() string {
	if t.IsZero() {
		return "<nil token>"
	}
	return fmt.Sprintf("%s@%s %q", t.Kind(), t.Span(), t.Text())
}
