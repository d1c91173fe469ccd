package highlight

import (
	"regexp"
	"strconv"
	"strings"
)

// metaPattern extracts the first brace-delimited line annotation from a code
// fence info string, e.g. the "{2,4-6,9}" in "go {2,4-6,9}". The bracket
// content may only contain digits, commas, and hyphens; anything else means
// the fence carries no annotation.
var metaPattern = regexp.MustCompile(`\{([\d,-]+)\}`)

// lineRange is an inclusive range of 1-based line numbers. A single
// annotated line is stored as start == end.
type lineRange struct {
	start, end int
}

// Selector decides which lines of a code block should be visually
// emphasized. The zero value selects no lines. A Selector is immutable after
// construction and safe for concurrent use.
type Selector struct {
	ranges []lineRange
}

// ParseMeta builds a Selector from a code fence meta string.
//
// The meta string may contain, anywhere within it, a single bracketed list of
// comma-separated line numbers and inclusive ranges: "{2,4-6,9}". Line
// numbers are 1-based. Only the first bracket group is honored. An absent,
// empty, or bracket-free meta string yields a Selector that matches no line;
// this is the common case and never an error.
//
// Tokens that fail to parse as integers (empty segments, "1-2-3", overflow)
// are dropped rather than rejected, so a sloppy annotation degrades to fewer
// highlighted lines instead of a broken page. A range with start > end
// matches nothing.
func ParseMeta(meta string) Selector {
	m := metaPattern.FindStringSubmatch(meta)
	if m == nil {
		return Selector{}
	}
	var ranges []lineRange
	for _, tok := range strings.Split(m[1], ",") {
		lo, hi, bounded := strings.Cut(tok, "-")
		start, err := strconv.Atoi(lo)
		if err != nil {
			continue
		}
		if !bounded {
			ranges = append(ranges, lineRange{start, start})
			continue
		}
		end, err := strconv.Atoi(hi)
		if err != nil {
			continue
		}
		ranges = append(ranges, lineRange{start, end})
	}
	return Selector{ranges: ranges}
}

// Match reports whether the line at the zero-based index i is selected.
// Annotations are written with 1-based line numbers, so the index is shifted
// by one before testing membership. Ranges combine with OR semantics.
func (s Selector) Match(i int) bool {
	n := i + 1
	for _, r := range s.ranges {
		if n >= r.start && n <= r.end {
			return true
		}
	}
	return false
}

// Empty reports whether the selector matches no lines at all.
func (s Selector) Empty() bool {
	for _, r := range s.ranges {
		if r.start <= r.end {
			return false
		}
	}
	return true
}
