package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText   = color.New(color.FgCyan).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// style bundles the decorators used by formatError.
type style struct {
	label, message, fix, usageLabel, usage, bullet, category func(a ...interface{}) string
}

var (
	colored = style{
		label: errorLabel, message: errorMsg, fix: fixLabel,
		usageLabel: usageLabel, usage: usageText, bullet: bullet, category: categoryFmt,
	}
	plain = style{
		label: fmt.Sprint, message: fmt.Sprint, fix: fmt.Sprint,
		usageLabel: fmt.Sprint, usage: fmt.Sprint, bullet: fmt.Sprint, category: fmt.Sprint,
	}
)

// FormatError formats a CLIError for display in the terminal.
// It uses colors when available and falls back to plain text otherwise.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colored)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plain)
}

func formatError(err *CLIError, s style) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", s.label("Error"), s.category(err.Category.String()), s.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", s.usageLabel("Usage: "), s.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", s.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to the given writer.
// Colors are dropped when color output is disabled (NO_COLOR, no terminal).
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	if color.NoColor {
		fmt.Fprint(w, FormatErrorPlain(err))
		return
	}
	fmt.Fprint(w, FormatError(err))
}
