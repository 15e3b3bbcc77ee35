package changelog

import (
	"regexp"
	"strings"
)

// Section is a half-open line range [Start, End) over a document.
// Start indexes a heading line.
type Section struct {
	Start int
	End   int
}

// Contains reports whether line index i falls inside the section.
func (s Section) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// Len returns the number of lines in the section.
func (s Section) Len() int {
	return s.End - s.Start
}

// HeadingDepth returns the number of leading '#' characters of line,
// or 0 if line is not a heading.
func HeadingDepth(line string) int {
	return len(line) - len(strings.TrimLeft(line, "#"))
}

// SectionPattern returns a case-insensitive pattern matching a heading of any
// depth whose title starts with word, optionally wrapped in brackets:
// "## Unreleased" and "## [Unreleased]" both match "unreleased".
func SectionPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^#+\s*\[?\s*` + regexp.QuoteMeta(word) + `\s*]?[^\n]*$`)
}

// FindSection scans the headings within the given range for the first one
// matching pattern. The section it starts ends at the next heading of equal
// or lesser depth, or at the very next heading of any depth when ignoreDepth
// is set. Without a closing heading it extends to the end of the range.
func FindSection(lines []string, within Section, ignoreDepth bool, pattern *regexp.Regexp) (Section, bool) {
	start, startDepth := -1, 0

	for i := within.Start; i < within.End && i < len(lines); i++ {
		depth := HeadingDepth(lines[i])
		if depth == 0 {
			continue
		}

		if start >= 0 {
			if ignoreDepth || depth <= startDepth {
				return Section{Start: start, End: i}, true
			}
			continue
		}

		if pattern.MatchString(lines[i]) {
			start, startDepth = i, depth
		}
	}

	if start < 0 {
		return Section{}, false
	}
	return Section{Start: start, End: within.End}, true
}

// whole returns the section covering every line.
func whole(lines []string) Section {
	return Section{Start: 0, End: len(lines)}
}
