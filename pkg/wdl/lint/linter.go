package lint

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"wdlkit/wdl/pkg/wdl/ast"
	"wdlkit/wdl/pkg/wdl/diagnostic"
)

// Mode selects how rules are scheduled over a document.
type Mode int

const (
	// ModeSequential walks the document once per rule, one rule after another.
	ModeSequential Mode = iota
	// ModeParallel walks the document once per rule, each on its own goroutine.
	ModeParallel
	// ModeFanout walks the document once and broadcasts every event to all rules.
	ModeFanout
)

func (m Mode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeParallel:
		return "parallel"
	case ModeFanout:
		return "fanout"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "sequential", "parallel" or "fanout".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return ModeSequential, nil
	case "parallel":
		return ModeParallel, nil
	case "fanout", "fan-out":
		return ModeFanout, nil
	default:
		return 0, fmt.Errorf("unknown lint mode %q (valid: sequential, parallel, fanout)", s)
	}
}

// Recorder receives timing and volume information about lint runs.
// *metrics.Collector implements it.
type Recorder interface {
	RecordRule(rule string, duration time.Duration, diagnostics int, failed bool)
	RecordRun(mode string, duration time.Duration, diagnostics int)
}

// RuleFailure records a rule that aborted while visiting a document, usually
// because it hit an *ast.InvariantViolation on a malformed tree.
type RuleFailure struct {
	Rule string
	Err  error
}

func (f *RuleFailure) Error() string {
	return fmt.Sprintf("rule %s failed: %v", f.Rule, f.Err)
}

func (f *RuleFailure) Unwrap() error {
	return f.Err
}

func newRuleFailure(rule string, recovered any) *RuleFailure {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}
	return &RuleFailure{Rule: rule, Err: err}
}

// Report is the outcome of linting one document.
type Report struct {
	// Rules lists the IDs of the rules that ran, sorted.
	Rules []string
	// Diagnostics holds every finding in source order.
	Diagnostics diagnostic.List
	// Failures lists rules that aborted. Their diagnostics are discarded.
	Failures []*RuleFailure
	Mode     Mode
	Duration time.Duration
}

// Failed reports whether any rule aborted.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Option configures a Linter.
type Option func(*Linter)

// WithRules replaces the default rule set.
func WithRules(rules ...Rule) Option {
	return func(l *Linter) {
		l.rules = slices.Clone(rules)
	}
}

// WithMode sets the scheduling mode.
func WithMode(mode Mode) Option {
	return func(l *Linter) {
		l.mode = mode
	}
}

// WithSeverityOverrides rewrites the severity of diagnostics produced by the
// named rules.
func WithSeverityOverrides(overrides map[string]diagnostic.Severity) Option {
	return func(l *Linter) {
		l.overrides = overrides
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics reports run statistics to r.
func WithMetrics(r Recorder) Option {
	return func(l *Linter) {
		l.metrics = r
	}
}

// WithTracerProvider sets the provider used for "lint.Run" and "lint.Rule"
// spans. The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(l *Linter) {
		if tp != nil {
			l.tracer = tp.Tracer(tracerName)
		}
	}
}

const tracerName = "wdlkit/wdl/lint"

// Linter runs a set of rules over documents. A Linter is immutable after
// construction and safe for concurrent use.
type Linter struct {
	rules     []Rule
	mode      Mode
	overrides map[string]diagnostic.Severity
	logger    *slog.Logger
	metrics   Recorder
	tracer    trace.Tracer
}

// New creates a linter running every built-in rule sequentially unless
// options say otherwise.
func New(opts ...Option) *Linter {
	l := &Linter{
		rules:  Rules(),
		mode:   ModeSequential,
		logger: slog.Default(),
		tracer: otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "lint")
	return l
}

// Mode returns the scheduling mode.
func (l *Linter) Mode() Mode { return l.mode }

// Rules returns the rules the linter runs.
func (l *Linter) Rules() []Rule { return slices.Clone(l.rules) }

// ruleResult is the isolated outcome of one rule.
type ruleResult struct {
	diagnostics diagnostic.List
	failure     *RuleFailure
	duration    time.Duration
}

// Run lints doc. Every rule gets its own diagnostics sink, and a rule that
// panics is reported as a RuleFailure without affecting the others. The
// report is identical whichever mode or rule order is used.
//
// Run returns an error only when ctx is done before all rules finish.
func (l *Linter) Run(ctx context.Context, doc ast.Document) (*Report, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := l.tracer.Start(ctx, "lint.Run", trace.WithAttributes(
		attribute.String("lint.mode", l.mode.String()),
		attribute.Int("lint.rules", len(l.rules)),
	))
	defer span.End()

	var (
		results []ruleResult
		err     error
	)
	switch l.mode {
	case ModeParallel:
		results, err = l.runParallel(ctx, doc)
	case ModeFanout:
		results, err = l.runFanout(ctx, doc)
	default:
		results, err = l.runSequential(ctx, doc)
	}
	if err != nil {
		l.logger.Debug("lint run cancelled", "mode", l.mode.String(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report := &Report{Mode: l.mode}
	for i, rule := range l.rules {
		res := results[i]
		report.Rules = append(report.Rules, rule.ID())
		if res.failure != nil {
			report.Failures = append(report.Failures, res.failure)
			if l.mode == ModeFanout {
				span.AddEvent("rule failed", trace.WithAttributes(
					attribute.String("lint.rule", rule.ID()),
					attribute.String("error", res.failure.Err.Error()),
				))
			}
			l.logger.Warn("rule failed", "rule", rule.ID(), "error", res.failure.Err)
		} else {
			for _, d := range res.diagnostics {
				if sev, ok := l.overrides[d.Rule]; ok {
					d = d.WithSeverity(sev)
				}
				report.Diagnostics = append(report.Diagnostics, d)
			}
		}
		l.logger.Debug("rule finished",
			"rule", rule.ID(),
			"diagnostics", len(res.diagnostics),
			"duration", res.duration,
		)
		if l.metrics != nil {
			l.metrics.RecordRule(rule.ID(), res.duration, len(res.diagnostics), res.failure != nil)
		}
	}

	slices.Sort(report.Rules)
	slices.SortFunc(report.Failures, func(a, b *RuleFailure) int {
		return strings.Compare(a.Rule, b.Rule)
	})
	report.Diagnostics.Sort()
	report.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("lint.diagnostics", len(report.Diagnostics)),
		attribute.Int("lint.failures", len(report.Failures)),
	)
	if report.Failed() {
		span.SetStatus(codes.Error, fmt.Sprintf("%d rule(s) failed", len(report.Failures)))
	}

	if l.metrics != nil {
		l.metrics.RecordRun(l.mode.String(), report.Duration, len(report.Diagnostics))
	}
	return report, nil
}

func (l *Linter) runSequential(ctx context.Context, doc ast.Document) ([]ruleResult, error) {
	results := make([]ruleResult, len(l.rules))
	for i, rule := range l.rules {
		res, err := l.runRule(ctx, doc, rule)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

func (l *Linter) runParallel(ctx context.Context, doc ast.Document) ([]ruleResult, error) {
	results := make([]ruleResult, len(l.rules))
	g, gctx := errgroup.WithContext(ctx)
	for i, rule := range l.rules {
		g.Go(func() error {
			res, err := l.runRule(gctx, doc, rule)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runRule walks doc with a fresh visitor and sink for rule.
func (l *Linter) runRule(ctx context.Context, doc ast.Document, rule Rule) (res ruleResult, err error) {
	start := time.Now()
	sink := diagnostic.NewDiagnostics()
	ctx, span := l.tracer.Start(ctx, "lint.Rule", trace.WithAttributes(attribute.String("lint.rule", rule.ID())))
	defer func() {
		if p := recover(); p != nil {
			res = ruleResult{failure: newRuleFailure(rule.ID(), p)}
		}
		res.duration = time.Since(start)
		switch {
		case res.failure != nil:
			span.RecordError(res.failure.Err)
			span.SetStatus(codes.Error, res.failure.Error())
		case err == nil:
			span.SetAttributes(attribute.Int("lint.diagnostics", len(res.diagnostics)))
		}
		span.End()
	}()

	if err := ast.VisitContext(ctx, doc, sink, rule.Visitor()); err != nil {
		return ruleResult{}, err
	}
	return ruleResult{diagnostics: sink.Items()}, nil
}

func (l *Linter) runFanout(ctx context.Context, doc ast.Document) ([]ruleResult, error) {
	results := make([]ruleResult, len(l.rules))
	sinks := make([]*diagnostic.Diagnostics, len(l.rules))
	listeners := make([]ast.Listener, len(l.rules))
	for i, rule := range l.rules {
		sinks[i] = diagnostic.NewDiagnostics()
		listeners[i] = guard(rule.ID(), &results[i], ast.Bind(rule.Visitor(), sinks[i]))
	}

	if err := ast.BroadcastContext(ctx, doc, listeners...); err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].failure == nil {
			results[i].diagnostics = sinks[i].Items()
		}
	}
	return results, nil
}

// guard wraps a listener so that a panic marks its rule as failed and
// silences it for the rest of the walk. Time spent in the listener is
// accumulated into res.duration.
func guard(rule string, res *ruleResult, next ast.Listener) ast.Listener {
	return func(ev ast.Event) {
		if res.failure != nil {
			return
		}
		start := time.Now()
		defer func() {
			if p := recover(); p != nil {
				res.failure = newRuleFailure(rule, p)
			}
			res.duration += time.Since(start)
		}()
		next(ev)
	}
}
