package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/naming"
)

//go:embed templates/*
var templates embed.FS

// ErrConfigExists is returned by WriteDefault when the target file exists.
var ErrConfigExists = errors.New("configuration file already exists")

// DefaultCategories are the Keep a Changelog section names.
var DefaultCategories = []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"fragments_dir": ".tinychange",
		"changelog":     "CHANGELOG.md",
		// categories: also the order of sections in the unreleased block
		"categories":          append([]string(nil), DefaultCategories...),
		"naming":              string(naming.Buzzword),
		"max_filename_length": naming.DefaultMaxLength,
	}
}

// DefaultTemplate returns the commented default config for the format
// implied by path's extension.
func DefaultTemplate(path string) ([]byte, error) {
	var name string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		name = "templates/default.toml"
	case ".yml", ".yaml":
		name = "templates/default.yml"
	case ".json":
		name = "templates/default.json"
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yml, .yaml or .json)", filepath.Ext(path))
	}

	data, err := templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading embedded template: %w", err)
	}
	return data, nil
}

// WriteDefault writes the default config template to path. An existing
// file is never overwritten.
func WriteDefault(path string) error {
	data, err := DefaultTemplate(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
		return fmt.Errorf("creating config file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing config file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing config file: %w", err)
	}
	return nil
}
