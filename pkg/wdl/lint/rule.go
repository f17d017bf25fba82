package lint

import (
	"slices"
	"strings"

	"wdlkit/wdl/pkg/wdl/ast"
	"wdlkit/wdl/pkg/wdl/diagnostic"
)

// Rule is a lint rule.
//
// A rule observes a document through the visitor it returns and appends its
// findings to the sink passed as visitor state. Visitor must return a fresh
// visitor on every call so that concurrent runs share nothing.
type Rule interface {
	// ID is the unique identifier of the rule, e.g. "NoCurlyCommands".
	ID() string
	// Description is a one-line summary.
	Description() string
	// Explanation describes why the rule exists.
	Explanation() string
	// Tags categorizes the rule.
	Tags() TagSet
	// Visitor returns a new visitor that reports into a diagnostics sink.
	Visitor() ast.Visitor[*diagnostic.Diagnostics]
}

var registry = []Rule{
	NoCurlyCommands{},
}

// Rules returns every built-in rule ordered by ID.
func Rules() []Rule {
	rules := slices.Clone(registry)
	slices.SortFunc(rules, func(a, b Rule) int {
		return strings.Compare(a.ID(), b.ID())
	})
	return rules
}

// IDs returns the IDs of every built-in rule in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for _, r := range Rules() {
		ids = append(ids, r.ID())
	}
	return ids
}

// Lookup finds a built-in rule by ID. Matching ignores case.
func Lookup(id string) (Rule, bool) {
	for _, r := range registry {
		if strings.EqualFold(r.ID(), id) {
			return r, true
		}
	}
	return nil, false
}

// Suggest returns a "Did you mean" hint for an unknown rule ID, or "".
func Suggest(id string) string {
	return diagnostic.SuggestName(id, IDs())
}

// ByTag returns the built-in rules carrying any of the given tags.
func ByTag(tags TagSet) []Rule {
	var rules []Rule
	for _, r := range Rules() {
		if r.Tags().Intersects(tags) {
			rules = append(rules, r)
		}
	}
	return rules
}
