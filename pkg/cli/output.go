package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gookit/color"

	"wdlkit/wdl/pkg/store"
	"wdlkit/wdl/pkg/wdl"
	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/lint"
	"wdlkit/wdl/pkg/wdl/syntax"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is human-readable output with source context (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output for CI pipelines.
	FormatJSON OutputFormat = "json"
)

// ParseFormat parses an output format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json)", s)
	}
}

// DiagnosticReport is the JSON shape of one diagnostic.
type DiagnosticReport struct {
	Rule     string `json:"rule,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Fix      string `json:"fix,omitempty"`
}

// FileReport is the JSON shape of one linted file.
type FileReport struct {
	File        string             `json:"file"`
	Valid       bool               `json:"valid"`
	Errors      int                `json:"errors"`
	Warnings    int                `json:"warnings"`
	Notes       int                `json:"notes"`
	FailedRules []string           `json:"failed_rules,omitempty"`
	Diagnostics []DiagnosticReport `json:"diagnostics,omitempty"`
}

// Summary totals a set of file reports.
type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notes    int `json:"notes"`
	Failed   int `json:"failed_rules"`
}

// Add folds a report into the summary.
func (s *Summary) Add(r FileReport) {
	s.Files++
	s.Errors += r.Errors
	s.Warnings += r.Warnings
	s.Notes += r.Notes
	s.Failed += len(r.FailedRules)
}

// NewFileReport flattens a lint result.
func NewFileReport(res *wdl.Result) FileReport {
	report := FileReport{File: res.Path, Valid: !res.HasErrors()}
	if res.Report != nil {
		for _, f := range res.Report.Failures {
			report.FailedRules = append(report.FailedRules, f.Rule)
		}
	}

	lines := syntax.NewLineIndex(res.Source)
	for _, d := range res.Diagnostics() {
		switch d.Severity {
		case diagnostic.SeverityError:
			report.Errors++
		case diagnostic.SeverityWarning:
			report.Warnings++
		default:
			report.Notes++
		}
		dr := DiagnosticReport{
			Rule:     d.Rule,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Fix:      d.Fix,
		}
		if len(d.Labels) > 0 {
			pos := lines.Position(d.Span().Start)
			dr.Line, dr.Column = pos.Line, pos.Column
		}
		report.Diagnostics = append(report.Diagnostics, dr)
	}
	return report
}

// Printer writes command output in the configured format.
type Printer struct {
	w            io.Writer
	format       OutputFormat
	color        bool
	contextLines int
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithColor enables ANSI colors in text output.
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.color = enabled
	}
}

// WithContextLines sets the number of source lines shown around a diagnostic.
func WithContextLines(n int) PrinterOption {
	return func(p *Printer) {
		p.contextLines = n
	}
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, format OutputFormat, opts ...PrinterOption) *Printer {
	p := &Printer{w: w, format: format, contextLines: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrintResults writes lint results followed by a summary and returns the
// summary.
func (p *Printer) PrintResults(results []*wdl.Result) (Summary, error) {
	var (
		summary Summary
		reports = make([]FileReport, 0, len(results))
	)
	for _, res := range results {
		r := NewFileReport(res)
		summary.Add(r)
		reports = append(reports, r)
	}

	if p.format == FormatJSON {
		return summary, p.json(struct {
			Files   []FileReport `json:"files"`
			Summary Summary      `json:"summary"`
		}{reports, summary})
	}

	for _, res := range results {
		for _, d := range res.Diagnostics() {
			if err := p.diagnostic(res.Path, res.Source, d); err != nil {
				return summary, err
			}
		}
		if res.Report != nil {
			for _, f := range res.Report.Failures {
				fmt.Fprintf(p.w, "%s: %s: %v\n\n", p.paint(color.FgRed, "error"), res.Path, f)
			}
		}
	}
	_, err := fmt.Fprintln(p.w, p.summaryLine(summary))
	return summary, err
}

func (p *Printer) diagnostic(file, source string, d diagnostic.Diagnostic) error {
	var sb strings.Builder
	if err := diagnostic.Render(&sb, file, source, d, p.contextLines); err != nil {
		return err
	}
	out := sb.String()
	if p.color {
		sev := d.Severity.String()
		out = p.paint(severityColor(d.Severity), sev) + strings.TrimPrefix(out, sev)
	}
	_, err := fmt.Fprintln(p.w, out)
	return err
}

func (p *Printer) summaryLine(s Summary) string {
	files := "files"
	if s.Files == 1 {
		files = "file"
	}
	line := fmt.Sprintf("%d %s checked: %d error(s), %d warning(s), %d note(s)",
		s.Files, files, s.Errors, s.Warnings, s.Notes)
	if s.Failed > 0 {
		line += fmt.Sprintf(", %d failed rule(s)", s.Failed)
	}
	switch {
	case s.Errors > 0 || s.Failed > 0:
		return p.paint(color.FgRed, line)
	case s.Warnings > 0:
		return p.paint(color.FgYellow, line)
	default:
		return p.paint(color.FgGreen, line)
	}
}

// RuleReport is the JSON shape of a rule descriptor.
type RuleReport struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Explanation string   `json:"explanation,omitempty"`
	Tags        []string `json:"tags"`
}

func newRuleReport(r lint.Rule, explain bool) RuleReport {
	report := RuleReport{ID: r.ID(), Description: r.Description()}
	if explain {
		report.Explanation = r.Explanation()
	}
	for _, tag := range r.Tags().Tags() {
		report.Tags = append(report.Tags, tag.String())
	}
	return report
}

// PrintRules writes a table of rules.
func (p *Printer) PrintRules(rules []lint.Rule) error {
	if p.format == FormatJSON {
		reports := make([]RuleReport, 0, len(rules))
		for _, r := range rules {
			reports = append(reports, newRuleReport(r, false))
		}
		return p.json(reports)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTAGS\tDESCRIPTION")
	for _, r := range rules {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID(), r.Tags(), r.Description())
	}
	return tw.Flush()
}

// PrintRule writes one rule with its explanation.
func (p *Printer) PrintRule(r lint.Rule) error {
	if p.format == FormatJSON {
		return p.json(newRuleReport(r, true))
	}
	_, err := fmt.Fprintf(p.w, "%s\n\n%s\n\n%s\n\ntags: %s\n",
		p.paint(color.OpBold, r.ID()),
		r.Description(),
		r.Explanation(),
		r.Tags(),
	)
	return err
}

// PrintRuns writes stored lint runs, newest first.
func (p *Printer) PrintRuns(runs []*store.Run) error {
	if p.format == FormatJSON {
		if runs == nil {
			runs = []*store.Run{}
		}
		return p.json(runs)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(p.w, "no runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tFILE\tERRORS\tWARNINGS\tNOTES\tDURATION\tID")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime),
			r.Path,
			r.Errors,
			r.Warnings,
			r.Notes,
			r.Duration.Round(time.Microsecond),
			r.ID,
		)
	}
	return tw.Flush()
}

// PrintRun writes one stored run with its findings.
func (p *Printer) PrintRun(r *store.Run) error {
	if p.format == FormatJSON {
		return p.json(r)
	}
	fmt.Fprintf(p.w, "run %s\n", r.ID)
	fmt.Fprintf(p.w, "  file:     %s\n", r.Path)
	fmt.Fprintf(p.w, "  started:  %s\n", r.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(p.w, "  mode:     %s\n", r.Mode)
	fmt.Fprintf(p.w, "  findings: %d error(s), %d warning(s), %d note(s)\n", r.Errors, r.Warnings, r.Notes)
	if len(r.FailedRules) > 0 {
		fmt.Fprintf(p.w, "  failed:   %s\n", strings.Join(r.FailedRules, ", "))
	}
	for _, f := range r.Findings {
		sev := f.Severity
		if s, err := diagnostic.ParseSeverity(sev); err == nil {
			sev = p.paint(severityColor(s), sev)
		}
		if f.Rule != "" {
			sev += "[" + f.Rule + "]"
		}
		if _, err := fmt.Fprintf(p.w, "%s:%d:%d: %s: %s\n", r.Path, f.Line, f.Column, sev, f.Message); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) paint(c color.Color, s string) string {
	if !p.color {
		return s
	}
	return c.Sprint(s)
}

func severityColor(s diagnostic.Severity) color.Color {
	switch s {
	case diagnostic.SeverityError:
		return color.FgRed
	case diagnostic.SeverityWarning:
		return color.FgYellow
	default:
		return color.FgCyan
	}
}
