package fragment

import (
	"errors"
	"fmt"
	"strings"
)

const (
	authorLabel = "- Author"
	kindLabel   = "- Kind"
	separator   = "---"
)

// Reason identifies why a fragment could not be decoded.
type Reason int

const (
	ReasonMissingAuthor Reason = iota
	ReasonMalformedAuthor
	ReasonUnexpectedAuthorLabel
	ReasonMissingKind
	ReasonMalformedKind
	ReasonUnexpectedKindLabel
	ReasonMissingSeparator
	ReasonEmptyAuthor
	ReasonEmptyKind
	ReasonEmptyMessage
	ReasonUnknownKind
)

// FormatError describes a malformed fragment.
type FormatError struct {
	Reason Reason
	// Value holds the offending label or kind, when there is one.
	Value string
}

func (e *FormatError) Error() string {
	switch e.Reason {
	case ReasonMissingAuthor:
		return "invalid format: missing author field"
	case ReasonMalformedAuthor:
		return "invalid format: malformed author field (missing colon)"
	case ReasonUnexpectedAuthorLabel:
		return fmt.Sprintf("invalid format: expected author field, got %q", e.Value)
	case ReasonMissingKind:
		return "invalid format: missing kind field"
	case ReasonMalformedKind:
		return "invalid format: malformed kind field (missing colon)"
	case ReasonUnexpectedKindLabel:
		return fmt.Sprintf("invalid format: expected kind field, got %q", e.Value)
	case ReasonMissingSeparator:
		return "invalid format: missing message separator"
	case ReasonEmptyAuthor:
		return "empty author field"
	case ReasonEmptyKind:
		return "empty kind field"
	case ReasonEmptyMessage:
		return "empty message field"
	case ReasonUnknownKind:
		return fmt.Sprintf("unknown change kind %q", e.Value)
	default:
		return "invalid fragment format"
	}
}

// IsFormatError returns true if the error is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// Encode serializes a change into the fragment file format.
// The message is stored verbatim; nothing is escaped.
func Encode(c Change) string {
	return authorLabel + ": " + c.Author + "\n" +
		kindLabel + ": " + c.Kind + "\n" +
		separator + "\n" +
		c.Message
}

// Decode parses fragment content. Blank lines may separate the author
// line, the kind line and the separator; everything after the separator
// is the message. The kind must be one of categories.
func Decode(content string, categories []string) (Change, error) {
	lines := splitLines(content)
	pos := 0

	author, err := readField(lines, &pos, authorLabel,
		ReasonMissingAuthor, ReasonMalformedAuthor, ReasonUnexpectedAuthorLabel)
	if err != nil {
		return Change{}, err
	}
	skipBlank(lines, &pos)

	kind, err := readField(lines, &pos, kindLabel,
		ReasonMissingKind, ReasonMalformedKind, ReasonUnexpectedKindLabel)
	if err != nil {
		return Change{}, err
	}
	skipBlank(lines, &pos)

	if pos >= len(lines) || lines[pos] != separator {
		return Change{}, &FormatError{Reason: ReasonMissingSeparator}
	}
	pos++

	message := normalizeLineEndings(strings.TrimSpace(strings.Join(lines[pos:], "\n")))

	c := Change{Kind: kind, Message: message, Author: author}
	if err := Validate(c, categories); err != nil {
		return Change{}, err
	}
	return c, nil
}

// Validate checks that no field is empty and that the kind is one of
// categories.
func Validate(c Change, categories []string) error {
	if strings.TrimSpace(c.Author) == "" {
		return &FormatError{Reason: ReasonEmptyAuthor}
	}
	if strings.TrimSpace(c.Kind) == "" {
		return &FormatError{Reason: ReasonEmptyKind}
	}
	if strings.TrimSpace(c.Message) == "" {
		return &FormatError{Reason: ReasonEmptyMessage}
	}
	if !containsCategory(categories, c.Kind) {
		return &FormatError{Reason: ReasonUnknownKind, Value: c.Kind}
	}
	return nil
}

// readField consumes one "<label>: <value>" line and returns the trimmed value.
func readField(lines []string, pos *int, label string, missing, malformed, unexpected Reason) (string, error) {
	if *pos >= len(lines) {
		return "", &FormatError{Reason: missing}
	}
	line := lines[*pos]
	*pos++

	field, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", &FormatError{Reason: malformed}
	}
	if field != label {
		return "", &FormatError{Reason: unexpected, Value: field}
	}
	return strings.TrimSpace(value), nil
}

// skipBlank advances pos past whitespace-only lines.
func skipBlank(lines []string, pos *int) {
	for *pos < len(lines) && strings.TrimSpace(lines[*pos]) == "" {
		*pos++
	}
}

// splitLines splits on "\n", dropping a trailing "\r" from each line and
// the empty element produced by a final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// normalizeLineEndings converts CRLF and lone CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
