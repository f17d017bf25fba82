package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wdlkit/wdl/pkg/wdl/syntax"
)

const taskSource = `version 1.2

# A comment
task test {
    input {
        String name
        Int? count = 3
    }

    command <<<
        echo "hello ~{name}"
    >>>

    output {
        String out = read_string(stdout())
    }

    requirements {
        container: "ubuntu:latest"
    }

    meta {
        description: "a test"
        numbers: [1, -2, 3.5]
        nested: { a: null, b: true }
    }

    parameter_meta {
        name: "the name"
    }

    String x = "private"
}
`

func concatTokens(n syntax.Node) string {
	var sb strings.Builder
	for child := range n.Children() {
		switch c := child.(type) {
		case syntax.Token:
			sb.WriteString(c.Text())
		case syntax.Node:
			sb.WriteString(concatTokens(c))
		}
	}
	return sb.String()
}

func findAll(n syntax.Node, kind syntax.Kind) []syntax.Node {
	var out []syntax.Node
	if n.Kind() == kind {
		out = append(out, n)
	}
	for c := range n.ChildNodes() {
		out = append(out, findAll(c, kind)...)
	}
	return out
}

func TestParse_Lossless(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"task", taskSource},
		{"empty", ""},
		{"only comment", "# nothing here\n"},
		{"brace command", "version 1.1\ntask t {\n  command {\n    echo ${x} ~{y}\n  }\n}\n"},
		{"workflow", "version 1.0\nworkflow w {\n  input { File f }\n  Int n = 1 + 2 * 3\n  output { Int m = n }\n}\n"},
		{"struct", "version 1.1\nstruct Person {\n  String name\n  Array[Int]+ ids\n  Map[String, Pair[Int, File?]] m\n}\n"},
		{"garbage", "version 1.2\n@@@ task\n}}} ` ` \"unterminated\n"},
		{"unterminated command", "version 1.2\ntask t { command <<< echo"},
		{"unicode", "version 1.2\ntask t { meta { d: \"héllo ✓\" } }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := Parse(tt.source)
			root := tree.Root()
			if root.Kind() != syntax.RootNode {
				t.Fatalf("root kind = %s, want RootNode", root.Kind())
			}
			if root.Span() != syntax.NewSpan(0, len(tt.source)) {
				t.Errorf("root span = %s, want 0..%d", root.Span(), len(tt.source))
			}
			if diff := cmp.Diff(tt.source, concatTokens(root)); diff != "" {
				t.Errorf("token concatenation mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_ValidDocumentHasNoDiagnostics(t *testing.T) {
	_, diags := Parse(taskSource)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestParse_Structure(t *testing.T) {
	tree, _ := Parse(taskSource)
	root := tree.Root()

	counts := map[syntax.Kind]int{
		syntax.VersionStatementNode:         1,
		syntax.TaskDefinitionNode:           1,
		syntax.InputSectionNode:             1,
		syntax.OutputSectionNode:            1,
		syntax.CommandSectionNode:           1,
		syntax.RequirementsSectionNode:      1,
		syntax.MetadataSectionNode:          1,
		syntax.ParameterMetadataSectionNode: 1,
		syntax.UnboundDeclNode:              1,
		syntax.BoundDeclNode:                3,
		syntax.PlaceholderNode:              1,
		syntax.MetadataArrayNode:            1,
		syntax.MetadataObjectNode:           1,
		syntax.LiteralNullNode:              1,
	}
	for kind, want := range counts {
		if got := len(findAll(root, kind)); got != want {
			t.Errorf("count(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestParse_KeywordAsName(t *testing.T) {
	tree, diags := Parse("version 1.2\ntask t {\n  output {\n    String output = stdout()\n  }\n}\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	decls := findAll(tree.Root(), syntax.BoundDeclNode)
	if len(decls) != 1 {
		t.Fatalf("expected 1 bound decl, got %d", len(decls))
	}
	name, ok := decls[0].FirstToken(syntax.Ident)
	if !ok || name.Text() != "output" {
		t.Errorf("decl name = %v, want output", name)
	}
}

func TestParse_Precedence(t *testing.T) {
	tree, diags := Parse("version 1.2\nworkflow w {\n  Boolean b = 1 + 2 * 3 == 7 || !false\n}\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	or := findAll(tree.Root(), syntax.LogicalOrExprNode)
	if len(or) != 1 {
		t.Fatalf("expected 1 || expression, got %d", len(or))
	}
	if got, want := or[0].Text(), "1 + 2 * 3 == 7 || !false"; got != want {
		t.Errorf("|| text = %q, want %q", got, want)
	}

	add := findAll(tree.Root(), syntax.AdditionExprNode)
	if len(add) != 1 || add[0].Text() != "1 + 2 * 3" {
		t.Errorf("addition = %v", add)
	}
	mul := findAll(tree.Root(), syntax.MultiplicationExprNode)
	if len(mul) != 1 || mul[0].Text() != "2 * 3" {
		t.Errorf("multiplication = %v", mul)
	}
}

func TestParse_Postfix(t *testing.T) {
	tree, diags := Parse("version 1.2\nworkflow w {\n  Int x = pairs[0].left\n}\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	access := findAll(tree.Root(), syntax.AccessExprNode)
	if len(access) != 1 || access[0].Text() != "pairs[0].left" {
		t.Fatalf("access = %v", access)
	}
	index := findAll(tree.Root(), syntax.IndexExprNode)
	if len(index) != 1 || index[0].Text() != "pairs[0]" {
		t.Errorf("index = %v", index)
	}
}

func TestParse_NodesStartAtFirstToken(t *testing.T) {
	tree, _ := Parse(taskSource)
	for _, kind := range []syntax.Kind{syntax.TaskDefinitionNode, syntax.CommandSectionNode, syntax.BoundDeclNode} {
		for _, n := range findAll(tree.Root(), kind) {
			text := n.Text()
			if text != strings.TrimSpace(text) {
				t.Errorf("%s has surrounding trivia: %q", kind, text)
			}
		}
	}
}

func TestParse_CommandText(t *testing.T) {
	tests := []struct {
		name         string
		source       string
		placeholders int
		texts        []string
	}{
		{
			name:         "heredoc ignores dollar placeholders",
			source:       "version 1.2\ntask t { command <<< a ${b} ~{c} d >>> }",
			placeholders: 1,
			texts:        []string{" a ${b} ", " d "},
		},
		{
			name:         "brace accepts both placeholders",
			source:       "version 1.0\ntask t { command { a ${b} ~{c} } }",
			placeholders: 2,
			texts:        []string{" a ", " ", " "},
		},
		{
			name:         "empty heredoc",
			source:       "version 1.2\ntask t { command <<<>>> }",
			placeholders: 0,
			texts:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, diags := Parse(tt.source)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			cmds := findAll(tree.Root(), syntax.CommandSectionNode)
			if len(cmds) != 1 {
				t.Fatalf("expected 1 command section, got %d", len(cmds))
			}

			var texts []string
			placeholders := 0
			for child := range cmds[0].Children() {
				switch c := child.(type) {
				case syntax.Token:
					if c.Kind() == syntax.LiteralCommandText {
						texts = append(texts, c.Text())
					}
				case syntax.Node:
					if c.Kind() == syntax.PlaceholderNode {
						placeholders++
					}
				}
			}
			if placeholders != tt.placeholders {
				t.Errorf("placeholders = %d, want %d", placeholders, tt.placeholders)
			}
			if diff := cmp.Diff(tt.texts, texts); diff != "" {
				t.Errorf("command text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"missing version", "task t {}", "expected version statement"},
		{"unexpected top level", "version 1.2\n42", "expected task, workflow or struct definition"},
		{"unbound output", "version 1.2\ntask t { output { String s } }", "expected `=`"},
		{"missing brace", "version 1.2\ntask t {", "expected `}`"},
		{"unterminated string", "version 1.2\ntask t { String s = \"abc\n}", "unterminated string"},
		{"unterminated command", "version 1.2\ntask t { command { echo", "unterminated command section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := Parse(tt.source)
			if !diags.HasErrors() {
				t.Fatal("expected error diagnostics")
			}
			found := false
			for _, d := range diags {
				if strings.Contains(d.Message, tt.message) {
					found = true
				}
				if d.Rule != "" {
					t.Errorf("syntax diagnostic has rule %q", d.Rule)
				}
			}
			if !found {
				t.Errorf("no diagnostic contains %q: %v", tt.message, diags)
			}
		})
	}
}

func TestParse_ErrorNode(t *testing.T) {
	tree, _ := Parse("version 1.2\n@ task t {}")
	errs := findAll(tree.Root(), syntax.ErrorNode)
	if len(errs) != 1 || errs[0].Text() != "@" {
		t.Fatalf("error nodes = %v", errs)
	}
	if got := len(findAll(tree.Root(), syntax.TaskDefinitionNode)); got != 1 {
		t.Errorf("parser did not recover: %d tasks", got)
	}
}

func TestParser_Parse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.wdl")
	if err := os.WriteFile(path, []byte(taskSource), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tree, diags, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if tree.Source() != taskSource {
		t.Error("tree source does not match file")
	}
}

func TestParser_Parse_MissingFile(t *testing.T) {
	_, _, err := NewParser().Parse(filepath.Join(t.TempDir(), "missing.wdl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParser_WithMaxFileSize(t *testing.T) {
	p := NewParser().WithMaxFileSize(10)
	if _, _, err := p.ParseBytes([]byte(taskSource)); err == nil {
		t.Fatal("expected error for oversized input")
	}
	if _, _, err := p.ParseBytes([]byte("version 1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
