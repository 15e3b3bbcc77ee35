// Package output provides terminal output formatting utilities for the
// tinychange CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Printer writes status lines for commands. Quiet suppresses everything
// except warnings; debug lines are only written when Debug is set.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool
	Debug bool
}

// NewPrinter creates a Printer writing status to out and diagnostics to errOut.
func NewPrinter(out, errOut io.Writer, quiet, debug bool) *Printer {
	return &Printer{Out: out, Err: errOut, Quiet: quiet, Debug: debug}
}

// Println prints an uncolored status line.
func (p *Printer) Println(message string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, message)
}

// Success prints a green checkmark followed by message and an optional
// cyan detail, e.g. a file path.
func (p *Printer) Success(message, detail string) {
	if p.Quiet {
		return
	}
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	if detail == "" {
		fmt.Fprintf(p.Out, "%s %s\n", green("✓"), message)
		return
	}
	fmt.Fprintf(p.Out, "%s %s %s\n", green("✓"), message, cyan(detail))
}

// Info prints a dim informational line.
func (p *Printer) Info(message string) {
	if p.Quiet {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintln(p.Out, dim(message))
}

// Warn prints a yellow warning to the error writer. Warnings are never
// suppressed by Quiet.
func (p *Printer) Warn(message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(p.Err, "%s %s\n", yellow("Warning:"), message)
}

// Debugf prints a magenta debug line to the error writer when Debug is set.
// Its signature matches the debug logger hooks of other packages.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.Debug {
		return
	}
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()
	fmt.Fprintf(p.Err, "%s %s\n", magenta("[debug]"), fmt.Sprintf(format, args...))
}
