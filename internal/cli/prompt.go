package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter asks questions on a line-based reader. A single buffered reader
// is shared by all prompts of a command so answers typed ahead are kept.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(r), out: w}
}

// readLine returns the next input line without its line ending.
// ok is false once the input is exhausted.
func (p *prompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// promptText asks question and returns the trimmed answer.
// Returns "" when the input ends before an answer was given.
func (p *prompter) promptText(question string) string {
	fmt.Fprintf(p.out, "%s: ", question)
	line, _ := p.readLine()
	return strings.TrimSpace(line)
}

// promptSelect displays a numbered list and asks for one of the options,
// either by number or by name (case-insensitive). Invalid answers ask
// again. Returns "" when the input ends before a valid answer.
//
// Example output:
//
//	What kind of change is this?
//	  [1] Added
//	  [2] Changed
//	  [3] Fixed
//
//	Select 1-3:
func (p *prompter) promptSelect(question string, options []string) string {
	fmt.Fprintln(p.out, question)
	for i, option := range options {
		fmt.Fprintf(p.out, "  [%d] %s\n", i+1, option)
	}

	for {
		fmt.Fprintf(p.out, "\nSelect 1-%d: ", len(options))

		line, ok := p.readLine()
		if !ok {
			return ""
		}

		if choice, found := matchOption(strings.TrimSpace(line), options); found {
			return choice
		}
		fmt.Fprintf(p.out, "Invalid choice %q\n", strings.TrimSpace(line))
	}
}

// matchOption resolves a 1-based index or an option name.
func matchOption(input string, options []string) (string, bool) {
	if input == "" {
		return "", false
	}
	if num, err := strconv.Atoi(input); err == nil {
		if num >= 1 && num <= len(options) {
			return options[num-1], true
		}
		return "", false
	}
	for _, option := range options {
		if strings.EqualFold(option, input) {
			return option, true
		}
	}
	return "", false
}
