package diagnostic

import (
	"fmt"
	"io"
	"strings"

	"wdlkit/wdl/pkg/wdl/syntax"
)

// Render writes a diagnostic with surrounding source lines.
//
//	warning[NoCurlyCommands]: task `test` uses curly braces in command section
//	  --> test.wdl:4:5
//	   |
//	 3 | task test {
//	 4 |     command {
//	   |     ^^^^^^^ this command section uses curly braces
//	 5 |         echo hi
//	   |
//	   = fix: instead of curly braces, use heredoc syntax (<<<>>>>) for command sections
func Render(w io.Writer, file, source string, d Diagnostic, contextLines int) error {
	var sb strings.Builder

	sb.WriteString(d.Severity.String())
	if d.Rule != "" {
		sb.WriteString("[" + d.Rule + "]")
	}
	sb.WriteString(": " + d.Message + "\n")

	if len(d.Labels) == 0 {
		if d.Fix != "" {
			sb.WriteString(fmt.Sprintf("  = fix: %s\n", d.Fix))
		}
		_, err := io.WriteString(w, sb.String())
		return err
	}

	index := syntax.NewLineIndex(source)
	primary := d.Labels[0]
	pos := index.Position(primary.Span.Start)
	sb.WriteString(fmt.Sprintf("  --> %s:%s\n", file, pos))

	startLine := pos.Line - contextLines
	if startLine < 1 {
		startLine = 1
	}
	endLine := pos.Line + contextLines
	if endLine > index.LineCount() {
		endLine = index.LineCount()
	}
	width := len(fmt.Sprintf("%d", endLine))
	gutter := strings.Repeat(" ", width)

	sb.WriteString(fmt.Sprintf(" %s |\n", gutter))
	for line := startLine; line <= endLine; line++ {
		span := index.LineSpan(line, source)
		sb.WriteString(fmt.Sprintf(" %*d | %s\n", width, line, source[span.Start:span.End]))

		for _, label := range d.Labels {
			lp := index.Position(label.Span.Start)
			if lp.Line != line {
				continue
			}
			length := label.Span.Len()
			if label.Span.End > span.End {
				length = span.End - label.Span.Start
			}
			if length < 1 {
				length = 1
			}
			sb.WriteString(fmt.Sprintf(" %s | %s%s %s\n",
				gutter,
				strings.Repeat(" ", lp.Column-1),
				strings.Repeat("^", length),
				label.Message,
			))
		}
	}
	sb.WriteString(fmt.Sprintf(" %s |\n", gutter))

	if d.Fix != "" {
		sb.WriteString(fmt.Sprintf(" %s = fix: %s\n", gutter, d.Fix))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
