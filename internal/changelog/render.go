package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/fragment"
)

const (
	documentHeader    = "# Changelog\n"
	unreleasedHeading = "## [Unreleased]"
)

// RenderChanges writes one "### <category>" block per category, in the
// configured category order. Each block holds the trimmed existing body for
// that category (if any) followed by the new changes.
//
// A category with no new changes and no existing body text is skipped
// entirely, so no empty headings are produced.
func RenderChanges(w io.Writer, changes []fragment.Change, existing map[string]string, categories []string) error {
	grouped := fragment.GroupByKind(changes)

	for _, category := range categories {
		body := strings.TrimSpace(existing[category])
		entries := grouped[category]
		if len(entries) == 0 && body == "" {
			continue
		}

		if err := renderCategory(w, category, body, entries); err != nil {
			return fmt.Errorf("rendering category %s: %w", category, err)
		}
	}

	return nil
}

// RenderChangesString is a convenience function that renders to a string.
func RenderChangesString(changes []fragment.Change, existing map[string]string, categories []string) string {
	var b strings.Builder
	// strings.Builder never fails to write
	_ = RenderChanges(&b, changes, existing, categories)
	return b.String()
}

// renderCategory writes a single category section with its entries.
func renderCategory(w io.Writer, category, body string, entries []fragment.Change) error {
	if _, err := io.WriteString(w, "\n### "+category+"\n\n"); err != nil {
		return err
	}

	if body != "" {
		if _, err := io.WriteString(w, body+"\n"); err != nil {
			return err
		}
	}

	for _, c := range entries {
		if _, err := io.WriteString(w, c.Markdown()+"\n"); err != nil {
			return err
		}
	}

	return nil
}

// renderDocument builds a brand-new changelog holding only an unreleased
// section with the given changes.
func renderDocument(changes []fragment.Change, categories []string) string {
	return documentHeader + "\n" + unreleasedHeading + "\n" + RenderChangesString(changes, nil, categories)
}
