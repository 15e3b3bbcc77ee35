package fragment

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension recognised for fragment files.
const Extension = ".md"

// ErrUnexpectedDirectory is reported when the fragments directory
// contains a subdirectory.
var ErrUnexpectedDirectory = errors.New("unexpected directory in fragments directory")

// Namer generates a file name stem from a seed.
type Namer interface {
	Generate(seed uint64) (string, error)
}

// Loaded is a decoded fragment together with the file it came from.
type Loaded struct {
	Path   string
	Change Change
}

// FileError attaches a fragment file path to a load failure.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to load fragment at %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Load reads and decodes a single fragment file.
func Load(path string, categories []string) (Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Change{}, &FileError{Path: path, Err: err}
	}

	c, err := Decode(string(data), categories)
	if err != nil {
		return Change{}, &FileError{Path: path, Err: err}
	}
	return c, nil
}

// LoadDir decodes every fragment file in dir, in file name order.
// Files without the fragment extension are ignored and a missing
// directory yields no fragments. The first malformed fragment aborts
// the whole batch.
func LoadDir(dir string, categories []string) ([]Loaded, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading fragments directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var loaded []Loaded
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			return nil, &FileError{Path: path, Err: ErrUnexpectedDirectory}
		}
		if filepath.Ext(entry.Name()) != Extension {
			continue
		}

		c, err := Load(path, categories)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, Loaded{Path: path, Change: c})
	}

	return loaded, nil
}

// Changes returns the decoded changes of a loaded batch.
func Changes(loaded []Loaded) []Change {
	changes := make([]Change, len(loaded))
	for i, l := range loaded {
		changes[i] = l.Change
	}
	return changes
}

// Seed returns a stable hash of the change, used to derive its file name.
func (c Change) Seed() uint64 {
	h := fnv.New64a()
	for _, part := range []string{c.Kind, c.Message, c.Author} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Filename returns the fragment file name for the change.
func Filename(c Change, namer Namer) (string, error) {
	stem, err := namer.Generate(c.Seed())
	if err != nil {
		return "", fmt.Errorf("generating file name: %w", err)
	}
	return stem + Extension, nil
}

// Write stores the change as a new fragment in dir and returns its path.
// The directory is created if needed; an existing file is never overwritten.
func Write(dir string, c Change, namer Namer) (string, error) {
	name, err := Filename(c, namer)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating fragments directory: %w", err)
	}

	path := filepath.Join(dir, name)
	err = createExclusive(path, func(f *os.File) error {
		_, err := f.WriteString(Encode(c))
		return err
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// createExclusive creates path, which must not exist yet, and fills it with
// write. A partially written file is removed.
func createExclusive(path string, write func(*os.File) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("fragment %s already exists", path)
		}
		return fmt.Errorf("creating fragment file: %w", err)
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing fragment file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing fragment file: %w", err)
	}
	return nil
}

// Remove deletes consumed fragment files. It stops at the first failure.
func Remove(loaded []Loaded) error {
	for _, l := range loaded {
		if err := os.Remove(l.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing fragment %s: %w", l.Path, err)
		}
	}
	return nil
}

// Name returns the fragment's file name without directory or extension.
func (l Loaded) Name() string {
	return strings.TrimSuffix(filepath.Base(l.Path), Extension)
}
