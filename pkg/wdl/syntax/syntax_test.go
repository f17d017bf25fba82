package syntax

import (
	"iter"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildTask builds the tree for "task t {}" by hand.
func buildTask() *Tree {
	b := NewBuilder("task t {}")
	b.StartNode(RootNode)
	b.StartNode(TaskDefinitionNode)
	b.Token(TaskKeyword, 4)
	b.Token(Whitespace, 1)
	b.Token(Ident, 1)
	b.Token(Whitespace, 1)
	b.Token(OpenBrace, 1)
	b.Token(CloseBrace, 1)
	b.FinishNode()
	b.FinishNode()
	return b.Finish()
}

func kinds[E interface{ Kind() Kind }](seq iter.Seq[E]) []Kind {
	var out []Kind
	for e := range seq {
		out = append(out, e.Kind())
	}
	return out
}

func TestBuilder_Tree(t *testing.T) {
	tree := buildTask()

	if tree.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", tree.NodeCount())
	}
	if tree.TokenCount() != 6 {
		t.Errorf("TokenCount() = %d, want 6", tree.TokenCount())
	}

	root := tree.Root()
	if root.Kind() != RootNode {
		t.Fatalf("Root().Kind() = %v, want RootNode", root.Kind())
	}
	if _, ok := root.Parent(); ok {
		t.Error("root has a parent")
	}
	if root.Text() != tree.Source() {
		t.Errorf("root.Text() = %q, want whole source", root.Text())
	}

	task, ok := root.FirstNode(func(k Kind) bool { return k == TaskDefinitionNode })
	if !ok {
		t.Fatal("FirstNode(TaskDefinitionNode) not found")
	}
	if task.Span() != NewSpan(0, 9) {
		t.Errorf("task.Span() = %v, want 0..9", task.Span())
	}

	want := []Kind{TaskKeyword, Whitespace, Ident, Whitespace, OpenBrace, CloseBrace}
	if diff := cmp.Diff(want, kinds(task.ChildTokens())); diff != "" {
		t.Errorf("ChildTokens() mismatch (-want +got):\n%s", diff)
	}
	if task.ChildCount() != 6 {
		t.Errorf("ChildCount() = %d, want 6", task.ChildCount())
	}
	if got := len(slices.Collect(task.ChildNodes())); got != 0 {
		t.Errorf("ChildNodes() yielded %d nodes, want 0", got)
	}

	name, ok := task.FirstToken(Ident)
	if !ok {
		t.Fatal("FirstToken(Ident) not found")
	}
	if name.Text() != "t" || name.Span() != NewSpan(5, 6) {
		t.Errorf("name = %q at %v, want \"t\" at 5..6", name.Text(), name.Span())
	}
	if name.Parent() != task {
		t.Errorf("name.Parent() = %v, want %v", name.Parent(), task)
	}
	if got := kinds(name.Parent().Ancestors()); !slices.Equal(got, []Kind{RootNode}) {
		t.Errorf("Ancestors() = %v, want [RootNode]", got)
	}
	if _, ok := task.FirstToken(Comment); ok {
		t.Error("FirstToken(Comment) found a token")
	}
}

func TestBuilder_Lossless(t *testing.T) {
	tree := buildTask()
	var text string
	var walk func(n Node)
	walk = func(n Node) {
		for e := range n.Children() {
			switch e := e.(type) {
			case Token:
				text += e.Text()
			case Node:
				walk(e)
			}
		}
	}
	walk(tree.Root())
	if text != tree.Source() {
		t.Errorf("concatenated tokens = %q, want %q", text, tree.Source())
	}
}

func TestBuilder_Checkpoint(t *testing.T) {
	b := NewBuilder("f x")
	b.StartNode(RootNode)
	cp := b.Checkpoint()
	b.Token(Ident, 1)
	b.StartNodeAt(cp, CallExprNode)
	b.Token(Whitespace, 1)
	b.Token(Ident, 1)
	b.FinishNode()
	b.FinishNode()
	tree := b.Finish()

	root := tree.Root()
	if root.ChildCount() != 1 {
		t.Fatalf("root.ChildCount() = %d, want 1", root.ChildCount())
	}
	call, ok := root.Child(0).(Node)
	if !ok || call.Kind() != CallExprNode {
		t.Fatalf("root.Child(0) = %v, want CallExprNode", root.Child(0))
	}
	if call.Span() != NewSpan(0, 3) {
		t.Errorf("call.Span() = %v, want 0..3", call.Span())
	}
	if diff := cmp.Diff([]Kind{Ident, Whitespace, Ident}, kinds(call.ChildTokens())); diff != "" {
		t.Errorf("call tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Misuse(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{"token kind as node", func(b *Builder) { b.StartNode(Ident) }},
		{"node kind as token", func(b *Builder) { b.Token(RootNode, 1) }},
		{"token past end", func(b *Builder) { b.StartNode(RootNode); b.Token(Ident, 10) }},
		{"finish without start", func(b *Builder) { b.FinishNode() }},
		{"unfinished node", func(b *Builder) { b.StartNode(RootNode); b.Token(Ident, 2); b.Finish() }},
		{"source left over", func(b *Builder) { b.StartNode(RootNode); b.Token(Ident, 1); b.FinishNode(); b.Finish() }},
		{"root is a token", func(b *Builder) { b.Token(Ident, 2); b.Finish() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.build(NewBuilder("ab"))
		})
	}
}

func TestSpan(t *testing.T) {
	s := NewSpan(2, 6)
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if s.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !NewSpan(3, 3).IsEmpty() {
		t.Error("IsEmpty() = false for 3..3")
	}
	if !s.Contains(NewSpan(2, 4)) || s.Contains(NewSpan(1, 4)) || s.Contains(NewSpan(5, 7)) {
		t.Error("Contains() gave wrong answers")
	}
	if s.String() != "2..6" {
		t.Errorf("String() = %q, want 2..6", s.String())
	}
}

func TestLineIndex(t *testing.T) {
	source := "version 1.2\n\ntask a {\n}"
	index := NewLineIndex(source)

	if index.LineCount() != 4 {
		t.Errorf("LineCount() = %d, want 4", index.LineCount())
	}

	positions := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{8, Position{1, 9}},
		{11, Position{1, 12}},
		{12, Position{2, 1}},
		{13, Position{3, 1}},
		{18, Position{3, 6}},
		{22, Position{4, 1}},
	}
	for _, tt := range positions {
		if got := index.Position(tt.offset); got != tt.want {
			t.Errorf("Position(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	lines := []struct {
		line int
		want string
	}{
		{1, "version 1.2"},
		{2, ""},
		{3, "task a {"},
		{4, "}"},
		{5, ""},
	}
	for _, tt := range lines {
		span := index.LineSpan(tt.line, source)
		if got := source[span.Start:span.End]; got != tt.want {
			t.Errorf("LineSpan(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind                     Kind
		token, node, trivia, kw bool
	}{
		{Whitespace, true, false, true, false},
		{Comment, true, false, true, false},
		{TaskKeyword, true, false, false, true},
		{PairTypeKeyword, true, false, false, true},
		{Ident, true, false, false, false},
		{RootNode, false, true, false, false},
		{ErrorNode, false, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.IsToken(); got != tt.token {
				t.Errorf("IsToken() = %v, want %v", got, tt.token)
			}
			if got := tt.kind.IsNode(); got != tt.node {
				t.Errorf("IsNode() = %v, want %v", got, tt.node)
			}
			if got := tt.kind.IsTrivia(); got != tt.trivia {
				t.Errorf("IsTrivia() = %v, want %v", got, tt.trivia)
			}
			if got := tt.kind.IsKeyword(); got != tt.kw {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.kw)
			}
		})
	}

	for _, k := range Kinds() {
		if k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", int(k))
		}
		if k.IsToken() == k.IsNode() {
			t.Errorf("%v: IsToken() == IsNode()", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word string
		want Kind
	}{
		{"task", TaskKeyword},
		{"parameter_meta", ParameterMetaKeyword},
		{"None", NoneKeyword},
		{"none", Ident},
		{"my_task", Ident},
	}
	for _, tt := range tests {
		if got := LookupKeyword(tt.word); got != tt.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
