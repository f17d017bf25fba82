package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// Severity is the severity of a diagnostic.
type Severity int

const (
	SeverityError   Severity = iota // The document is invalid
	SeverityWarning                 // The document is valid but likely wrong or unidiomatic
	SeverityNote                    // Informational
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity parses "error", "warning" or "note" (case-insensitive).
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "note", "info":
		return SeverityNote, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Label attaches a message to a span of source text.
type Label struct {
	Message string      `json:"message"`
	Span    syntax.Span `json:"span"`
}

// Diagnostic is a structured finding about a document.
// Diagnostics are data: rules append them to a sink, they are never returned as errors.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule,omitempty"`
	Message  string   `json:"message"`
	Labels   []Label  `json:"labels,omitempty"`
	Fix      string   `json:"fix,omitempty"`
}

// Error creates an error diagnostic.
func Error(message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: message}
}

// Warning creates a warning diagnostic.
func Warning(message string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: message}
}

// Note creates a note diagnostic.
func Note(message string) Diagnostic {
	return Diagnostic{Severity: SeverityNote, Message: message}
}

// WithRule returns a copy of d attributed to the given rule.
func (d Diagnostic) WithRule(rule string) Diagnostic {
	d.Rule = rule
	return d
}

// WithLabel returns a copy of d with an additional label.
func (d Diagnostic) WithLabel(message string, span syntax.Span) Diagnostic {
	labels := make([]Label, len(d.Labels), len(d.Labels)+1)
	copy(labels, d.Labels)
	d.Labels = append(labels, Label{Message: message, Span: span})
	return d
}

// WithFix returns a copy of d with a fix suggestion.
func (d Diagnostic) WithFix(fix string) Diagnostic {
	d.Fix = fix
	return d
}

// WithSeverity returns a copy of d with a different severity.
func (d Diagnostic) WithSeverity(severity Severity) Diagnostic {
	d.Severity = severity
	return d
}

// Span returns the span of the first label, or an empty span if there are no labels.
func (d Diagnostic) Span() syntax.Span {
	if len(d.Labels) == 0 {
		return syntax.Span{}
	}
	return d.Labels[0].Span
}

// String returns a single-line description of the diagnostic.
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Severity.String())
	if d.Rule != "" {
		sb.WriteString("[" + d.Rule + "]")
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if len(d.Labels) > 0 {
		sb.WriteString(" (" + d.Labels[0].Span.String() + ")")
	}
	return sb.String()
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// HasErrors returns true if any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// BySeverity returns the diagnostics with the given severity.
func (l List) BySeverity(severity Severity) List {
	var result List
	for _, d := range l {
		if d.Severity == severity {
			result = append(result, d)
		}
	}
	return result
}

// ByRule returns the diagnostics produced by the given rule.
func (l List) ByRule(rule string) List {
	var result List
	for _, d := range l {
		if d.Rule == rule {
			result = append(result, d)
		}
	}
	return result
}

// Sort orders diagnostics by span start, then rule, then message.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i], l[j]
		if a.Span().Start != b.Span().Start {
			return a.Span().Start < b.Span().Start
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Message < b.Message
	})
}

// Diagnostics is a mutable sink that collects diagnostics during one analysis run.
// A sink is owned by exactly one rule execution and is not safe for concurrent use.
type Diagnostics struct {
	items List
}

// NewDiagnostics creates an empty sink.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Add appends a diagnostic.
func (d *Diagnostics) Add(diagnostic Diagnostic) {
	d.items = append(d.items, diagnostic)
}

// Len returns the number of collected diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.items)
}

// Items returns a copy of the collected diagnostics in insertion order.
func (d *Diagnostics) Items() List {
	out := make(List, len(d.items))
	copy(out, d.items)
	return out
}

// Sorted returns a copy of the collected diagnostics in source order.
func (d *Diagnostics) Sorted() List {
	out := d.Items()
	out.Sort()
	return out
}
