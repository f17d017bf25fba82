package ast

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wdlkit/wdl/pkg/wdl/syntax"
)

type counts struct {
	documents, tasks, inputs, outputs, commands, requirements, hints, runtimes int
	metadata, paramMetadata, unboundDecls, boundDecls, exprs, placeholders     int
	commandTexts, stringTexts, metaItems, metaObjects                          int
	version                                                                    SupportedVersion
}

type countingVisitor struct {
	NopVisitor[*counts]
}

func (countingVisitor) Document(c *counts, r VisitReason, _ Document, v SupportedVersion) {
	if r == Enter {
		c.documents++
		c.version = v
	}
}

func (countingVisitor) TaskDefinition(c *counts, r VisitReason, _ TaskDefinition) {
	if r == Enter {
		c.tasks++
	}
}

func (countingVisitor) InputSection(c *counts, r VisitReason, _ InputSection) {
	if r == Enter {
		c.inputs++
	}
}

func (countingVisitor) OutputSection(c *counts, r VisitReason, _ OutputSection) {
	if r == Enter {
		c.outputs++
	}
}

func (countingVisitor) CommandSection(c *counts, r VisitReason, _ CommandSection) {
	if r == Enter {
		c.commands++
	}
}

func (countingVisitor) RequirementsSection(c *counts, r VisitReason, _ RequirementsSection) {
	if r == Enter {
		c.requirements++
	}
}

func (countingVisitor) HintsSection(c *counts, r VisitReason, _ HintsSection) {
	if r == Enter {
		c.hints++
	}
}

func (countingVisitor) RuntimeSection(c *counts, r VisitReason, _ RuntimeSection) {
	if r == Enter {
		c.runtimes++
	}
}

func (countingVisitor) MetadataSection(c *counts, r VisitReason, _ MetadataSection) {
	if r == Enter {
		c.metadata++
	}
}

func (countingVisitor) ParameterMetadataSection(c *counts, r VisitReason, _ ParameterMetadataSection) {
	if r == Enter {
		c.paramMetadata++
	}
}

func (countingVisitor) UnboundDecl(c *counts, r VisitReason, _ UnboundDecl) {
	if r == Enter {
		c.unboundDecls++
	}
}

func (countingVisitor) BoundDecl(c *counts, r VisitReason, _ BoundDecl) {
	if r == Enter {
		c.boundDecls++
	}
}

func (countingVisitor) Expr(c *counts, r VisitReason, _ Expr) {
	if r == Enter {
		c.exprs++
	}
}

func (countingVisitor) Placeholder(c *counts, r VisitReason, _ Placeholder) {
	if r == Enter {
		c.placeholders++
	}
}

func (countingVisitor) CommandText(c *counts, _ CommandText) { c.commandTexts++ }
func (countingVisitor) StringText(c *counts, _ StringText)   { c.stringTexts++ }

func (countingVisitor) MetadataObjectItem(c *counts, r VisitReason, _ MetadataObjectItem) {
	if r == Enter {
		c.metaItems++
	}
}

func (countingVisitor) MetadataObject(c *counts, r VisitReason, _ MetadataObject) {
	if r == Enter {
		c.metaObjects++
	}
}

func TestVisit_Counts(t *testing.T) {
	doc := parse(t, taskFixture)
	var got counts
	Visit(doc, &got, countingVisitor{})

	want := counts{
		documents:     1,
		tasks:         1,
		inputs:        1,
		outputs:       1,
		commands:      1,
		requirements:  1,
		hints:         1,
		runtimes:      1,
		metadata:      1,
		paramMetadata: 1,
		unboundDecls:  1,
		boundDecls:    2,
		// stdout(), name (placeholder), "baz/qux", "bar", "foo/bar", "private"
		exprs:        6,
		placeholders: 1,
		commandTexts: 2,
		// baz/qux, bar, foo/bar, a test, a name to greet, private
		stringTexts: 6,
		metaItems:   4,
		metaObjects: 1,
		version:     Version12,
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(counts{})); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

// recorder logs every node event with its kind so ordering can be checked.
type recorder struct {
	NopVisitor[*[]string]
}

func (recorder) TaskDefinition(log *[]string, r VisitReason, t TaskDefinition) {
	*log = append(*log, r.String()+" task "+t.Name().Text())
}

func (recorder) InputSection(log *[]string, r VisitReason, _ InputSection) {
	*log = append(*log, r.String()+" input")
}

func (recorder) UnboundDecl(log *[]string, r VisitReason, d UnboundDecl) {
	*log = append(*log, r.String()+" decl "+d.Name().Text())
}

func (recorder) WorkflowDefinition(log *[]string, r VisitReason, w WorkflowDefinition) {
	*log = append(*log, r.String()+" workflow "+w.Name().Text())
}

func TestVisit_Order(t *testing.T) {
	doc := parse(t, "version 1.2\ntask a { input { Int x Int y } }\nworkflow b {}\n")
	var log []string
	Visit(doc, &log, recorder{})

	want := []string{
		"enter task a",
		"enter input",
		"enter decl x",
		"exit decl x",
		"enter decl y",
		"exit decl y",
		"exit input",
		"exit task a",
		"enter workflow b",
		"exit workflow b",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestEvents_Balanced(t *testing.T) {
	doc := parse(t, taskFixture)

	var stack []syntax.Node
	first := true
	for ev := range Events(doc) {
		n, isNode := ev.Element.(syntax.Node)
		if first {
			if !isNode || n.Kind() != syntax.RootNode || ev.Reason != Enter {
				t.Fatalf("first event = %v %v, want enter root", ev.Reason, ev.Element)
			}
			first = false
		}
		if !isNode {
			if ev.Reason != Enter {
				t.Errorf("token event with reason %v", ev.Reason)
			}
			continue
		}
		switch ev.Reason {
		case Enter:
			if len(stack) > 0 {
				if p, _ := n.Parent(); p != stack[len(stack)-1] {
					t.Errorf("entered %s outside its parent", n)
				}
			}
			stack = append(stack, n)
		case Exit:
			if len(stack) == 0 || stack[len(stack)-1] != n {
				t.Fatalf("unbalanced exit of %s", n)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		t.Errorf("%d node(s) never exited", len(stack))
	}
}

func TestEvents_StopEarly(t *testing.T) {
	doc := parse(t, taskFixture)
	n := 0
	for range Events(doc) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("events after break = %d", n)
	}
}

func TestDispatch_MetadataLiteralsAreNotExpressions(t *testing.T) {
	doc := parse(t, "version 1.2\ntask t {\n  meta { a: 1 b: [\"x\", -2] c: { d: true } }\n}\n")
	var got counts
	Visit(doc, &got, countingVisitor{})
	if got.exprs != 0 {
		t.Errorf("exprs = %d, want 0", got.exprs)
	}
	if got.metaItems != 3+1 || got.metaObjects != 1 || got.stringTexts != 1 {
		t.Errorf("counts = %+v", got)
	}
}

type triviaVisitor struct {
	NopVisitor[*[]string]
}

func (triviaVisitor) Comment(log *[]string, c Comment)        { *log = append(*log, c.Text()) }
func (triviaVisitor) Whitespace(log *[]string, _ Whitespace) { *log = append(*log, "ws") }

func TestVisit_Trivia(t *testing.T) {
	doc := parse(t, "# header\nversion 1.2 # trailing\n")
	var log []string
	Visit(doc, &log, triviaVisitor{})
	want := []string{"# header", "ws", "ws", "ws", "# trailing", "ws"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("trivia mismatch (-want +got):\n%s", diff)
	}
}

func TestBroadcast_IsolatesState(t *testing.T) {
	doc := parse(t, taskFixture)

	var a, b counts
	var log []string
	Broadcast(doc,
		Bind[*counts](countingVisitor{}, &a),
		Bind[*[]string](recorder{}, &log),
		Bind[*counts](countingVisitor{}, &b),
	)

	var single counts
	Visit(doc, &single, countingVisitor{})

	if diff := cmp.Diff(single, a, cmp.AllowUnexported(counts{})); diff != "" {
		t.Errorf("broadcast state a differs from a single walk (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(single, b, cmp.AllowUnexported(counts{})); diff != "" {
		t.Errorf("broadcast state b differs from a single walk (-want +got):\n%s", diff)
	}
	if len(log) == 0 || log[0] != "enter task test" {
		t.Errorf("recorder log = %v", log)
	}
}

func TestVisitContext_Cancelled(t *testing.T) {
	doc := parse(t, taskFixture)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got counts
	err := VisitContext(ctx, doc, &got, countingVisitor{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("VisitContext() error = %v, want context.Canceled", err)
	}
	if got.documents != 0 {
		t.Errorf("visitor was called after cancellation")
	}

	if err := VisitContext(context.Background(), doc, &got, countingVisitor{}); err != nil {
		t.Fatalf("VisitContext() error = %v", err)
	}
	if got.tasks != 1 {
		t.Errorf("tasks = %d, want 1", got.tasks)
	}
}
