package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/naming"
)

// Options is a configuration with every path made absolute against the
// directory holding the config file.
type Options struct {
	// Dir is the project directory, i.e. the config file's directory.
	Dir               string
	FragmentsDir      string
	Changelog         string
	Categories        []string
	Naming            naming.Type
	MaxFilenameLength int
}

// Resolve turns the configuration into Options. The fragments directory
// and the changelog must stay inside the project directory.
func (c *Configuration) Resolve() (*Options, error) {
	dir, err := filepath.Abs(filepath.Dir(c.Path))
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}

	fragmentsDir, err := resolveInside(dir, c.FragmentsDir)
	if err != nil {
		return nil, &ValidationError{FilePath: c.Path, Field: "fragments_dir", Message: err.Error()}
	}
	changelog, err := resolveInside(dir, c.Changelog)
	if err != nil {
		return nil, &ValidationError{FilePath: c.Path, Field: "changelog", Message: err.Error()}
	}

	namingType, err := naming.ParseType(c.Naming)
	if err != nil {
		return nil, &ValidationError{FilePath: c.Path, Field: "naming", Message: err.Error()}
	}

	return &Options{
		Dir:               dir,
		FragmentsDir:      fragmentsDir,
		Changelog:         changelog,
		Categories:        append([]string(nil), c.Categories...),
		Naming:            namingType,
		MaxFilenameLength: c.MaxFilenameLength,
	}, nil
}

// resolveInside joins path onto dir and fails if the result escapes dir.
func resolveInside(dir, path string) (string, error) {
	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(dir, resolved)
	}
	resolved = filepath.Clean(resolved)

	rel, err := filepath.Rel(dir, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside of the project directory %s", path, dir)
	}
	return resolved, nil
}
