package fragment

import (
	"strings"
)

// Change represents a single pending changelog entry.
// Kind must be one of the configured categories; Message may span
// multiple lines. None of the fields are empty once decoded.
type Change struct {
	Kind    string
	Message string
	Author  string
}

// Markdown renders the change as a changelog bullet.
//
// Single-line messages stay compact:
//
//	- Support X (by Jo)
//
// Multi-line messages keep their structure, with continuation lines
// indented under the bullet and the author on a trailing line:
//
//	- First line
//	  second line
//	  By: Jo
func (c Change) Markdown() string {
	if !strings.Contains(c.Message, "\n") {
		return "- " + c.Message + " (by " + c.Author + ")"
	}

	lines := strings.Split(c.Message, "\n")

	var b strings.Builder
	b.WriteString("- ")
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		b.WriteString("\n")
		if line != "" {
			b.WriteString("  ")
			b.WriteString(line)
		}
	}
	b.WriteString("\n  By: ")
	b.WriteString(c.Author)
	return b.String()
}

// GroupByKind groups changes by their kind, preserving input order
// within each group.
func GroupByKind(changes []Change) map[string][]Change {
	grouped := make(map[string][]Change)
	for _, c := range changes {
		grouped[c.Kind] = append(grouped[c.Kind], c)
	}
	return grouped
}

// containsCategory reports whether kind is one of the configured categories.
// Category names are case-sensitive.
func containsCategory(categories []string, kind string) bool {
	for _, c := range categories {
		if c == kind {
			return true
		}
	}
	return false
}
