package diagnostic

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wdlkit/wdl/pkg/wdl/syntax"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"Warning", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{" note ", SeverityNote, false},
		{"info", SeverityNote, false},
		{"fatal", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeverity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(Warning("w").WithRule("R"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"severity":"warning"`) {
		t.Errorf("Marshal() = %s, want severity as text", data)
	}

	var d Diagnostic
	if err := json.Unmarshal([]byte(`{"severity":"note","message":"m"}`), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.Severity != SeverityNote {
		t.Errorf("Severity = %v, want note", d.Severity)
	}
	if err := json.Unmarshal([]byte(`{"severity":"loud"}`), &d); err == nil {
		t.Error("Unmarshal() accepted unknown severity")
	}
}

func TestDiagnostic_Builders(t *testing.T) {
	base := Error("bad").WithLabel("here", syntax.NewSpan(1, 3))
	a := base.WithLabel("also", syntax.NewSpan(5, 6))
	b := base.WithLabel("other", syntax.NewSpan(7, 8))

	if len(base.Labels) != 1 {
		t.Errorf("base labels = %d, want 1", len(base.Labels))
	}
	if a.Labels[1].Message != "also" || b.Labels[1].Message != "other" {
		t.Errorf("labels share storage: a=%v b=%v", a.Labels, b.Labels)
	}

	d := base.WithRule("R").WithFix("do this").WithSeverity(SeverityNote)
	want := Diagnostic{
		Severity: SeverityNote,
		Rule:     "R",
		Message:  "bad",
		Labels:   []Label{{Message: "here", Span: syntax.NewSpan(1, 3)}},
		Fix:      "do this",
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("builder result mismatch (-want +got):\n%s", diff)
	}
	if base.Severity != SeverityError || base.Rule != "" {
		t.Errorf("builders modified the receiver: %+v", base)
	}
	if d.Span() != syntax.NewSpan(1, 3) {
		t.Errorf("Span() = %v, want 1..3", d.Span())
	}
	if got := Note("n").Span(); !got.IsEmpty() {
		t.Errorf("Span() without labels = %v, want empty", got)
	}
	if got, want := d.String(), "note[R]: bad (1..3)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestList(t *testing.T) {
	l := List{
		Warning("w2").WithRule("B").WithLabel("", syntax.NewSpan(10, 11)),
		Error("e").WithRule("A").WithLabel("", syntax.NewSpan(10, 11)),
		Warning("w1").WithRule("B").WithLabel("", syntax.NewSpan(2, 3)),
		Note("n"),
	}

	if !l.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	if (List{Warning("w")}).HasErrors() {
		t.Error("HasErrors() = true for warnings only")
	}
	if got := len(l.BySeverity(SeverityWarning)); got != 2 {
		t.Errorf("BySeverity(warning) = %d, want 2", got)
	}
	if got := len(l.ByRule("A")); got != 1 {
		t.Errorf("ByRule(A) = %d, want 1", got)
	}

	l.Sort()
	var got []string
	for _, d := range l {
		got = append(got, d.Message)
	}
	if diff := cmp.Diff([]string{"n", "w1", "e", "w2"}, got); diff != "" {
		t.Errorf("Sort() order mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnostics_Sink(t *testing.T) {
	sink := NewDiagnostics()
	sink.Add(Warning("late").WithLabel("", syntax.NewSpan(9, 10)))
	sink.Add(Warning("early").WithLabel("", syntax.NewSpan(1, 2)))

	if sink.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", sink.Len())
	}
	items := sink.Items()
	if items[0].Message != "late" {
		t.Errorf("Items()[0] = %q, want insertion order", items[0].Message)
	}
	items[0].Message = "changed"
	if sink.Items()[0].Message != "late" {
		t.Error("Items() returned the sink's own storage")
	}
	if sorted := sink.Sorted(); sorted[0].Message != "early" {
		t.Errorf("Sorted()[0] = %q, want early", sorted[0].Message)
	}
}

const curlySource = "version 1.2\n\ntask test {\n    command {\n        echo hi\n    }\n}\n"

func TestRender(t *testing.T) {
	d := Warning("task `test` uses curly braces in command section").
		WithRule("NoCurlyCommands").
		WithLabel("this command section uses curly braces", syntax.NewSpan(29, 36)).
		WithFix("instead of curly braces, use heredoc syntax (<<<>>>>) for command sections")

	var sb strings.Builder
	if err := Render(&sb, "test.wdl", curlySource, d, 1); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := "warning[NoCurlyCommands]: task `test` uses curly braces in command section\n" +
		"  --> test.wdl:4:5\n" +
		"   |\n" +
		" 3 | task test {\n" +
		" 4 |     command {\n" +
		"   |     ^^^^^^^ this command section uses curly braces\n" +
		" 5 |         echo hi\n" +
		"   |\n" +
		"   = fix: instead of curly braces, use heredoc syntax (<<<>>>>) for command sections\n"
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_NoLabels(t *testing.T) {
	var sb strings.Builder
	if err := Render(&sb, "test.wdl", curlySource, Error("broken").WithFix("fix it"), 2); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := "error: broken\n  = fix: fix it\n"; sb.String() != want {
		t.Errorf("Render() = %q, want %q", sb.String(), want)
	}
}

func TestSuggestName(t *testing.T) {
	valid := []string{"NoCurlyCommands", "SnakeCase"}
	tests := []struct {
		unknown string
		want    string
	}{
		{"NoCurlyCommand", "Did you mean 'NoCurlyCommands'?"},
		{"nocurlycommands", "Did you mean 'NoCurlyCommands'?"},
		{"snake_case", "Did you mean 'SnakeCase'?"},
		{"TotallyDifferent", ""},
	}
	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			if got := SuggestName(tt.unknown, valid); got != tt.want {
				t.Errorf("SuggestName() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := SuggestName("x", nil); got != "" {
		t.Errorf("SuggestName() with no names = %q, want empty", got)
	}
}
