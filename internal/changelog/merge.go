package changelog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/fragment"
)

// Strategy describes how new changes were placed into the document.
type Strategy int

const (
	// StrategyCreated means no changelog existed and a new one was rendered.
	StrategyCreated Strategy = iota
	// StrategyMergedUnreleased means changes were merged into an existing
	// unreleased section.
	StrategyMergedUnreleased
	// StrategyInsertedUnreleased means a new unreleased section was added at
	// the end of the top-level changelog section.
	StrategyInsertedUnreleased
)

func (s Strategy) String() string {
	switch s {
	case StrategyCreated:
		return "created"
	case StrategyMergedUnreleased:
		return "merged into unreleased section"
	case StrategyInsertedUnreleased:
		return "inserted unreleased section"
	default:
		return "unknown"
	}
}

// MergeErrorKind classifies structural problems in the changelog document.
type MergeErrorKind int

const (
	// UnexpectedContent is a non-blank line between category sections of the
	// unreleased section that belongs to no known category.
	UnexpectedContent MergeErrorKind = iota
	// NoAnchorSection means the document has neither an unreleased nor a
	// changelog heading.
	NoAnchorSection
)

// MergeError reports a changelog document the merger refuses to modify.
type MergeError struct {
	Kind MergeErrorKind
	// Line is the 1-based line number of the offending content.
	Line    int
	Content string
}

func (e *MergeError) Error() string {
	switch e.Kind {
	case UnexpectedContent:
		return fmt.Sprintf("unexpected content or unknown category in unreleased section at line %d: %s", e.Line, e.Content)
	case NoAnchorSection:
		return "no unreleased or changelog section found in changelog file"
	default:
		return "invalid changelog structure"
	}
}

// IsMergeError returns true if the error is a MergeError.
func IsMergeError(err error) bool {
	var me *MergeError
	return errors.As(err, &me)
}

// Result is the outcome of a merge.
type Result struct {
	Content  string
	Strategy Strategy
}

// Merger merges changes into a changelog document.
type Merger struct {
	// Categories is the ordered list of valid change kinds. It determines
	// the order of category sections in generated output.
	Categories []string
}

// NewMerger creates a Merger for the given category ordering.
func NewMerger(categories []string) *Merger {
	return &Merger{Categories: categories}
}

// Merge computes the new changelog text. existing is nil when no changelog
// file exists yet. The document is never partially modified: either the
// complete new text is returned or an error. An empty batch leaves an
// existing document unchanged.
func (m *Merger) Merge(existing *string, changes []fragment.Change) (Result, error) {
	if existing == nil {
		return Result{Content: renderDocument(changes, m.Categories), Strategy: StrategyCreated}, nil
	}

	lines := strings.Split(strings.ReplaceAll(*existing, "\r\n", "\n"), "\n")

	if unreleased, ok := FindSection(lines, whole(lines), false, SectionPattern("unreleased")); ok {
		merged, err := m.mergeUnreleased(lines, unreleased, changes)
		if err != nil {
			return Result{}, err
		}
		return Result{Content: strings.Join(merged, "\n"), Strategy: StrategyMergedUnreleased}, nil
	}

	if section, ok := FindSection(lines, whole(lines), true, SectionPattern("changelog")); ok {
		if len(changes) == 0 {
			return Result{Content: *existing, Strategy: StrategyInsertedUnreleased}, nil
		}
		inserted := m.insertUnreleased(lines, section, changes)
		return Result{Content: strings.Join(inserted, "\n"), Strategy: StrategyInsertedUnreleased}, nil
	}

	return Result{}, &MergeError{Kind: NoAnchorSection}
}

// mergeUnreleased replaces the category sections of the unreleased section
// with a re-rendered block holding both their existing bodies and the new
// changes. Lines before the first and after the last category section are
// kept as they are.
func (m *Merger) mergeUnreleased(lines []string, unreleased Section, changes []fragment.Change) ([]string, error) {
	inner := Section{Start: unreleased.Start + 1, End: unreleased.End}

	existing := make(map[string]string)
	var ranges []Section
	for _, category := range m.Categories {
		section, ok := FindSection(lines, inner, false, SectionPattern(category))
		if !ok {
			continue
		}
		ranges = append(ranges, section)
		existing[category] = strings.Join(lines[section.Start+1:section.End], "\n")
	}

	span := Section{Start: unreleased.End, End: unreleased.End}
	if len(ranges) > 0 {
		span = union(ranges)
		if err := checkSpan(lines, span, ranges); err != nil {
			return nil, err
		}
	}

	block := RenderChangesString(changes, existing, m.Categories)

	cut := span.Start
	for cut > 0 && strings.TrimSpace(lines[cut-1]) == "" {
		cut--
	}

	return splice(lines, cut, span.End, block), nil
}

// insertUnreleased adds a new unreleased section at the end of the
// changelog section, dropping one blank line right before it.
func (m *Merger) insertUnreleased(lines []string, section Section, changes []fragment.Change) []string {
	block := RenderChangesString(changes, nil, m.Categories)
	place := section.End

	if place > 0 && strings.TrimSpace(lines[place-1]) == "" {
		return splice(lines, place-1, place, "\n"+unreleasedHeading, block)
	}
	return splice(lines, place, place, "\n"+unreleasedHeading, block)
}

// union returns the smallest section covering all ranges.
func union(ranges []Section) Section {
	span := ranges[0]
	for _, r := range ranges[1:] {
		span.Start = min(span.Start, r.Start)
		span.End = max(span.End, r.End)
	}
	return span
}

// checkSpan fails on any non-blank line inside span that belongs to none of
// the category ranges.
func checkSpan(lines []string, span Section, ranges []Section) error {
	for i := span.Start; i < span.End; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		if !anyContains(ranges, i) {
			return &MergeError{Kind: UnexpectedContent, Line: i + 1, Content: lines[i]}
		}
	}
	return nil
}

func anyContains(ranges []Section, i int) bool {
	for _, r := range ranges {
		if r.Contains(i) {
			return true
		}
	}
	return false
}

// splice returns lines with [from, to) replaced by replacement.
func splice(lines []string, from, to int, replacement ...string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(replacement))
	out = append(out, lines[:from]...)
	out = append(out, replacement...)
	out = append(out, lines[to:]...)
	return out
}
