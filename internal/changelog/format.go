package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/fragment"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps lowercased category names to their terminal styling.
// Categories outside Keep a Changelog fall back to defaultStyle.
var categoryStyles = map[string]CategoryStyle{
	"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
	"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
	"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
	"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
	"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
}

var defaultStyle = CategoryStyle{Color: color.New(color.FgCyan), Icon: "•"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// styleFor returns the styling of a category.
func styleFor(category string) CategoryStyle {
	if style, ok := categoryStyles[strings.ToLower(category)]; ok {
		return style
	}
	return defaultStyle
}

// FormatPending writes pending fragments grouped by category, in category
// order, as they would appear in the unreleased section.
func FormatPending(w io.Writer, loaded []fragment.Loaded, categories []string, opts FormatOptions) error {
	if len(loaded) == 0 {
		return nil
	}

	width := resolveWidth(opts.MaxWidth)

	if err := writePendingHeader(w, len(loaded), opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	grouped := groupLoaded(loaded)
	for _, category := range categories {
		entries, ok := grouped[category]
		if !ok {
			continue
		}
		if err := writeCategorySection(w, category, entries, opts, width); err != nil {
			return fmt.Errorf("formatting category %s: %w", category, err)
		}
	}

	return nil
}

// groupLoaded groups fragments by kind, preserving order.
func groupLoaded(loaded []fragment.Loaded) map[string][]fragment.Loaded {
	grouped := make(map[string][]fragment.Loaded)
	for _, l := range loaded {
		grouped[l.Change.Kind] = append(grouped[l.Change.Kind], l)
	}
	return grouped
}

// writePendingHeader writes the summary header line.
func writePendingHeader(w io.Writer, count int, opts FormatOptions) error {
	noun := "fragments"
	if count == 1 {
		noun = "fragment"
	}
	header := fmt.Sprintf("Unreleased (%d pending %s)", count, noun)

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(w io.Writer, category string, entries []fragment.Loaded, opts FormatOptions, width int) error {
	style := styleFor(category)

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", category); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(category)); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if err := writeEntry(w, entry, style, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeEntry writes a single pending change with optional wrapping.
// Multi-line messages are shown by their first line only.
func writeEntry(w io.Writer, entry fragment.Loaded, style CategoryStyle, opts FormatOptions, width int) error {
	prefix := "  - "
	text := firstLine(entry.Change.Message) + " (by " + entry.Change.Author + ")"

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s  [%s]\n", prefix, text, entry.Name())
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s %s\n", prefix, colored(wrapped), dim("["+entry.Name()+"]"))
	return err
}

// FormatSummary returns a brief one-line summary of a pending fragment.
func FormatSummary(entry fragment.Loaded, opts FormatOptions) string {
	text := truncateText(firstLine(entry.Change.Message), 60)

	if opts.Plain {
		return fmt.Sprintf("[%s] %s (%s)", entry.Change.Kind, text, entry.Name())
	}

	style := styleFor(entry.Change.Kind)
	colored := style.Color.SprintFunc()
	return fmt.Sprintf("%s %s (%s)", colored(style.Icon), text, entry.Name())
}

// firstLine returns the message up to the first line break, marking
// truncated multi-line messages with an ellipsis.
func firstLine(message string) string {
	line, _, more := strings.Cut(message, "\n")
	if more {
		return line + " …"
	}
	return line
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
