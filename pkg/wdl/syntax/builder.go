package syntax

import "fmt"

type pendingElement struct {
	ref  elementRef
	span Span
}

type frame struct {
	kind   Kind
	start  int
	offset int
}

// Checkpoint marks a position in the builder so that a node can later be
// started there, wrapping elements that were already added.
type Checkpoint int

// Builder assembles a Tree bottom-up from a stream of tokens.
// Tokens must be added in source order and must cover the source exactly.
// Misuse (unbalanced nodes, gaps, leftover source) is a programming error and panics.
type Builder struct {
	tree    *Tree
	offset  int
	pending []pendingElement
	frames  []frame
}

// NewBuilder creates a builder for the given source text.
func NewBuilder(source string) *Builder {
	return &Builder{
		tree: &Tree{source: source, root: noParent},
	}
}

// Offset returns the byte offset of the next token.
func (b *Builder) Offset() int {
	return b.offset
}

// StartNode opens a node of the given kind at the current position.
func (b *Builder) StartNode(kind Kind) {
	if !kind.IsNode() {
		panic(fmt.Sprintf("syntax: StartNode called with token kind %s", kind))
	}
	b.frames = append(b.frames, frame{kind: kind, start: len(b.pending), offset: b.offset})
}

// Checkpoint returns a checkpoint at the current position.
func (b *Builder) Checkpoint() Checkpoint {
	return Checkpoint(len(b.pending))
}

// StartNodeAt opens a node that adopts every element added since the checkpoint.
func (b *Builder) StartNodeAt(cp Checkpoint, kind Kind) {
	if !kind.IsNode() {
		panic(fmt.Sprintf("syntax: StartNodeAt called with token kind %s", kind))
	}
	at := int(cp)
	if at > len(b.pending) || (len(b.frames) > 0 && at < b.frames[len(b.frames)-1].start) {
		panic("syntax: checkpoint is no longer valid")
	}
	offset := b.offset
	if at < len(b.pending) {
		offset = b.pending[at].span.Start
	}
	b.frames = append(b.frames, frame{kind: kind, start: at, offset: offset})
}

// Token adds a token of the given kind covering the next length bytes.
func (b *Builder) Token(kind Kind, length int) {
	if !kind.IsToken() {
		panic(fmt.Sprintf("syntax: Token called with node kind %s", kind))
	}
	if length <= 0 || b.offset+length > len(b.tree.source) {
		panic(fmt.Sprintf("syntax: invalid token length %d at offset %d", length, b.offset))
	}
	span := Span{Start: b.offset, End: b.offset + length}
	b.tree.tokens = append(b.tree.tokens, tokenData{kind: kind, span: span, parent: noParent})
	b.pending = append(b.pending, pendingElement{
		ref:  elementRef{token: true, index: int32(len(b.tree.tokens) - 1)},
		span: span,
	})
	b.offset += length
}

// FinishNode closes the most recently started node.
func (b *Builder) FinishNode() {
	if len(b.frames) == 0 {
		panic("syntax: FinishNode without a matching StartNode")
	}
	f := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]

	index := int32(len(b.tree.nodes))
	children := make([]elementRef, 0, len(b.pending)-f.start)
	for _, p := range b.pending[f.start:] {
		children = append(children, p.ref)
		if p.ref.token {
			b.tree.tokens[p.ref.index].parent = index
		} else {
			b.tree.nodes[p.ref.index].parent = index
		}
	}

	span := Span{Start: f.offset, End: b.offset}
	b.tree.nodes = append(b.tree.nodes, nodeData{
		kind:     f.kind,
		span:     span,
		parent:   noParent,
		children: children,
	})
	b.pending = append(b.pending[:f.start], pendingElement{
		ref:  elementRef{index: index},
		span: span,
	})
}

// Finish returns the completed tree. Exactly one root node must remain and
// the whole source must have been consumed.
func (b *Builder) Finish() *Tree {
	if len(b.frames) != 0 {
		panic(fmt.Sprintf("syntax: %d unfinished node(s)", len(b.frames)))
	}
	if len(b.pending) != 1 || b.pending[0].ref.token {
		panic("syntax: tree must have exactly one root node")
	}
	if b.offset != len(b.tree.source) {
		panic(fmt.Sprintf("syntax: %d byte(s) of source were not consumed", len(b.tree.source)-b.offset))
	}
	b.tree.root = b.pending[0].ref.index
	tree := b.tree
	b.tree = nil
	return tree
}
