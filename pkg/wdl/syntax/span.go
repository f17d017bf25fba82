package syntax

import (
	"fmt"
	"sort"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewSpan creates a span from start (inclusive) to end (exclusive).
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains returns true if other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// String returns the span as "start..end".
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Position is a 1-based line and column in the source text.
// Columns count bytes, not runes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// LineIndex maps byte offsets to line and column positions.
type LineIndex struct {
	starts []int
}

// NewLineIndex indexes the line starts of source.
func NewLineIndex(source string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Position returns the line and column of a byte offset.
func (li *LineIndex) Position(offset int) Position {
	line := sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	return Position{Line: line + 1, Column: offset - li.starts[line] + 1}
}

// LineSpan returns the byte span of a 1-based line, excluding its newline.
func (li *LineIndex) LineSpan(line int, source string) Span {
	if line < 1 || line > len(li.starts) {
		return Span{}
	}
	start := li.starts[line-1]
	end := len(source)
	if line < len(li.starts) {
		end = li.starts[line] - 1
	}
	return Span{Start: start, End: end}
}

// LineCount returns the number of lines in the indexed source.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}
