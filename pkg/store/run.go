package store

import (
	"time"

	"github.com/google/uuid"

	"wdlkit/wdl/pkg/wdl"
	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/syntax"
)

// NewRun flattens a lint result into a Run ready to be saved. Positions are
// resolved against the result's source.
func NewRun(res *wdl.Result, startedAt time.Time) *Run {
	run := &Run{
		ID:        uuid.NewString(),
		Path:      res.Path,
		StartedAt: startedAt,
	}
	if res.Report != nil {
		run.Mode = res.Report.Mode.String()
		run.Duration = res.Report.Duration
		for _, f := range res.Report.Failures {
			run.FailedRules = append(run.FailedRules, f.Rule)
		}
	}

	lines := syntax.NewLineIndex(res.Source)
	for _, d := range res.Diagnostics() {
		switch d.Severity {
		case diagnostic.SeverityError:
			run.Errors++
		case diagnostic.SeverityWarning:
			run.Warnings++
		default:
			run.Notes++
		}
		pos := lines.Position(d.Span().Start)
		run.Findings = append(run.Findings, Finding{
			Rule:     d.Rule,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Line:     pos.Line,
			Column:   pos.Column,
			Fix:      d.Fix,
		})
	}
	return run
}
