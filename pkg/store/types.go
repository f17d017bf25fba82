package store

import (
	"context"
	"time"
)

// Run is one stored lint run over one file.
type Run struct {
	ID        string        `json:"id"`
	Path      string        `json:"path"`
	Mode      string        `json:"mode"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Notes    int `json:"notes"`

	// FailedRules lists rules that aborted during the run.
	FailedRules []string `json:"failed_rules,omitempty"`

	Findings []Finding `json:"findings,omitempty"`
}

// Total returns the number of diagnostics in the run.
func (r *Run) Total() int {
	return r.Errors + r.Warnings + r.Notes
}

// Finding is a stored diagnostic, flattened to a 1-based position.
type Finding struct {
	Rule     string `json:"rule,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Fix      string `json:"fix,omitempty"`
}

// Query filters stored runs. Results are ordered newest first.
type Query struct {
	// Path restricts results to one file.
	Path string

	// Since restricts results to runs started at or after this time.
	Since *time.Time

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// Store persists lint runs.
type Store interface {
	// Save stores a run and its findings.
	Save(ctx context.Context, run *Run) error

	// Get returns a run with its findings, or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns runs matching the query, without findings.
	List(ctx context.Context, query Query) ([]*Run, error)

	// Count returns the number of stored runs.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore deletes runs started before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteOldest deletes the n oldest runs.
	DeleteOldest(ctx context.Context, n int64) (int64, error)

	// Close releases resources held by the store.
	Close() error
}
