// Package naming generates file names for new fragments.
//
// Names are derived from a seed (a hash of the fragment content), so the same
// change always gets the same name. Three styles are supported:
//   - buzzword: "seamless-synergize-matrix-1a2b3c4"
//   - lorem:    "dolor-sit-amet-1a2b3c4"
//   - hash:     "1a2b3c4d5e6f7a8b"
package naming

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Type selects the naming style.
type Type string

const (
	Buzzword Type = "buzzword"
	Lorem    Type = "lorem"
	Hash     Type = "hash"
)

const (
	// DefaultMaxLength is used when no maximum file name length is configured.
	DefaultMaxLength = 127

	// maxTries bounds the number of attempts at finding a short enough name.
	maxTries = 100

	shortHashLength = 7
)

var unsafeChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// Types returns all naming styles.
func Types() []Type {
	return []Type{Buzzword, Lorem, Hash}
}

// ParseType converts a configuration value into a Type.
// The empty string selects the default (buzzword).
func ParseType(s string) (Type, error) {
	if s == "" {
		return Buzzword, nil
	}
	for _, t := range Types() {
		if string(t) == strings.ToLower(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown naming type %q (expected one of: buzzword, lorem, hash)", s)
}

// LengthError is returned when no name within the length limit was found.
type LengthError struct {
	MaxLength int
	Tries     int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("failed to generate a file name of length %d within %d tries", e.MaxLength, e.Tries)
}

// Generator produces file name stems.
type Generator struct {
	Type Type
	// MaxLength limits the name length; 0 means DefaultMaxLength.
	MaxLength int
}

// New creates a Generator for the given style and length limit.
func New(t Type, maxLength int) *Generator {
	return &Generator{Type: t, MaxLength: maxLength}
}

// Generate returns a file-system safe name derived from seed.
// Words are drawn from a generator seeded with seed, so the result is
// deterministic; names longer than the limit are redrawn.
func (g *Generator) Generate(seed uint64) (string, error) {
	maxLength := g.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	hash := fmt.Sprintf("%016x", seed)
	short := hash[:shortHashLength]
	faker := gofakeit.New(seed)

	for tries := 1; tries <= maxTries; tries++ {
		var name string
		switch g.Type {
		case Lorem:
			words := []string{faker.LoremIpsumWord(), faker.LoremIpsumWord(), faker.LoremIpsumWord()}
			name = strings.Join(words, "-") + "-" + short
		case Hash:
			name = hash
		default:
			name = strings.Join([]string{faker.BuzzWord(), faker.BS(), faker.HackerNoun(), short}, "-")
		}

		name = sanitize(name)
		if len(name) <= maxLength {
			return name, nil
		}
	}

	return "", &LengthError{MaxLength: maxLength, Tries: maxTries}
}

// sanitize lowercases the name, turns spaces into dashes and drops anything
// that is not safe in a file name.
func sanitize(name string) string {
	name = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return unsafeChars.ReplaceAllString(name, "")
}
