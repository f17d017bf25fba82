package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"wdlkit/wdl/pkg/cli"
	"wdlkit/wdl/pkg/config"
	"wdlkit/wdl/pkg/wdl/diagnostic"
	"wdlkit/wdl/pkg/wdl/lint"
)

// ruleFlags are the rule selection flags shared by lint and watch.
type ruleFlags struct {
	mode    string
	only    []string
	disable []string
	tags    []string
}

// buildLinter combines the lint section of the configuration with command
// line flags. Flags take precedence over the configuration file.
func buildLinter(cfg *config.Config, flags ruleFlags, logger *slog.Logger, recorder lint.Recorder) (*lint.Linter, error) {
	modeName := cfg.Lint.Mode
	if flags.mode != "" {
		modeName = flags.mode
	}
	mode, err := lint.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	enabled := make(map[string]bool)
	overrides := make(map[string]diagnostic.Severity)
	for id, rc := range cfg.Lint.Rules {
		rule, err := lookupRule(id)
		if err != nil {
			return nil, cli.NewConfigError("lint.rules."+id, err.Error())
		}
		enabled[rule.ID()] = rc.IsEnabled()
		if rc.Severity != "" {
			sev, err := diagnostic.ParseSeverity(rc.Severity)
			if err != nil {
				return nil, cli.NewConfigError("lint.rules."+id+".severity", err.Error())
			}
			overrides[rule.ID()] = sev
		}
	}

	candidates := lint.Rules()
	if len(flags.only) > 0 {
		candidates = candidates[:0]
		for _, id := range flags.only {
			rule, err := lookupRule(id)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, rule)
			enabled[rule.ID()] = true
		}
	}
	for _, id := range flags.disable {
		rule, err := lookupRule(id)
		if err != nil {
			return nil, err
		}
		enabled[rule.ID()] = false
	}

	var tags lint.TagSet
	for _, name := range flags.tags {
		tag, err := lint.ParseTag(name)
		if err != nil {
			return nil, err
		}
		tags = tags.Union(lint.NewTagSet(tag))
	}

	var rules []lint.Rule
	for _, rule := range candidates {
		if on, ok := enabled[rule.ID()]; ok && !on {
			continue
		}
		if tags != 0 && !rule.Tags().Intersects(tags) {
			continue
		}
		if !slices.ContainsFunc(rules, func(r lint.Rule) bool { return r.ID() == rule.ID() }) {
			rules = append(rules, rule)
		}
	}

	opts := []lint.Option{
		lint.WithRules(rules...),
		lint.WithMode(mode),
		lint.WithSeverityOverrides(overrides),
		lint.WithLogger(logger),
	}
	if recorder != nil {
		opts = append(opts, lint.WithMetrics(recorder))
	}
	return lint.New(opts...), nil
}

// lookupRule resolves a rule ID, suggesting the closest match when unknown.
func lookupRule(id string) (lint.Rule, error) {
	rule, ok := lint.Lookup(id)
	if ok {
		return rule, nil
	}
	msg := fmt.Sprintf("unknown rule %q", id)
	if hint := lint.Suggest(id); hint != "" {
		msg += ". " + hint
	}
	msg += " (available: " + strings.Join(lint.IDs(), ", ") + ")"
	return nil, errors.New(msg)
}
