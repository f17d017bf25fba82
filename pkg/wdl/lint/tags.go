package lint

import (
	"fmt"
	"strings"
)

// Tag categorizes a lint rule.
type Tag int

const (
	Completeness Tag = iota // Missing information that should be present
	Naming                  // Naming conventions
	Spacing                 // Whitespace and indentation
	Style                   // General style
	Clarity                 // Code that is ambiguous or hard to read
	Portability             // Behavior that differs between execution engines
	Correctness             // Code that is likely wrong
	Sorting                 // Ordering of items
	Deprecated              // Use of deprecated constructs
)

var tagNames = [...]string{
	Completeness: "Completeness",
	Naming:       "Naming",
	Spacing:      "Spacing",
	Style:        "Style",
	Clarity:      "Clarity",
	Portability:  "Portability",
	Correctness:  "Correctness",
	Sorting:      "Sorting",
	Deprecated:   "Deprecated",
}

// String returns the name of the tag.
func (t Tag) String() string {
	if t < 0 || int(t) >= len(tagNames) {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagNames[t]
}

// ParseTag parses a tag name, ignoring case.
func ParseTag(s string) (Tag, error) {
	for i, name := range tagNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Tag(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tag %q", s)
}

// TagSet is a set of tags.
type TagSet uint16

// NewTagSet returns the set containing tags.
func NewTagSet(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s |= 1 << uint(t)
	}
	return s
}

// Contains reports whether t is in the set.
func (s TagSet) Contains(t Tag) bool {
	return s&(1<<uint(t)) != 0
}

// Union returns the tags in either set.
func (s TagSet) Union(other TagSet) TagSet {
	return s | other
}

// Intersects reports whether the sets share a tag.
func (s TagSet) Intersects(other TagSet) bool {
	return s&other != 0
}

// Tags returns the members in declaration order.
func (s TagSet) Tags() []Tag {
	var tags []Tag
	for i := range tagNames {
		if s.Contains(Tag(i)) {
			tags = append(tags, Tag(i))
		}
	}
	return tags
}

func (s TagSet) String() string {
	names := make([]string, 0, len(tagNames))
	for _, t := range s.Tags() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}
