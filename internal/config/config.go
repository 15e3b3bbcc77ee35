// Package config provides configuration management for tinychange using koanf.
// Configuration is loaded with priority: environment variables (TINYCHANGE_*)
// > project config file > defaults. The project config file may be written
// in TOML, YAML or JSON and is located next to the changelog it describes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/naming"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "TINYCHANGE_"

// legacyFragmentsDirKey is the old name of fragments_dir, still accepted in
// config files.
const legacyFragmentsDirKey = "tinylogs_dir"

// Configuration represents the tinychange project configuration
type Configuration struct {
	// FragmentsDir holds pending change fragments, relative to the config file.
	FragmentsDir string `koanf:"fragments_dir" validate:"required"`
	// Changelog is the markdown file fragments are merged into, relative to
	// the config file.
	Changelog string `koanf:"changelog" validate:"required"`
	// Categories lists the allowed change kinds. Its order is the order of
	// category sections in the changelog.
	Categories []string `koanf:"categories" validate:"required,min=1,unique,dive,required"`
	// Naming selects the fragment file naming scheme.
	Naming string `koanf:"naming" validate:"oneof=buzzword lorem hash"`
	// MaxFilenameLength bounds generated fragment file names.
	MaxFilenameLength int `koanf:"max_filename_length" validate:"min=8,max=255"`

	// Path is the config file the configuration was loaded from.
	Path string `koanf:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath overrides config file discovery (the --config flag).
	ConfigPath string
	// Dir is the directory searched for a config file (default: current directory).
	Dir string
}

// NotFoundError is returned when no config file exists.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// IsNotFoundError returns true if the error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Load locates the project config file and loads it on top of the defaults,
// then applies environment variable overrides.
func Load(opts LoadOptions) (*Configuration, error) {
	path, err := locate(opts)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	loadDefaults(k)

	if err := loadProjectConfig(k, path); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	cfg, err := finalizeConfig(k, path)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// locate returns the config file to load.
func locate(opts LoadOptions) (string, error) {
	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return "", &NotFoundError{Path: opts.ConfigPath}
		}
		return opts.ConfigPath, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if path, ok := FindConfigFile(dir); ok {
		return path, nil
	}
	return "", &NotFoundError{Path: filepath.Join(dir, DefaultConfigName)}
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the config file, mapping the legacy tinylogs_dir
// key onto fragments_dir when the latter is not set.
func loadProjectConfig(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}

	if isYAML(path) {
		if err := ValidateYAMLSyntax(path); err != nil {
			return fmt.Errorf("validating YAML syntax: %w", err)
		}
	}

	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if fk.Exists(legacyFragmentsDirKey) && !fk.Exists("fragments_dir") {
		if err := fk.Set("fragments_dir", fk.Get(legacyFragmentsDirKey)); err != nil {
			return fmt.Errorf("mapping %s: %w", legacyFragmentsDirKey, err)
		}
	}

	if err := k.Merge(fk); err != nil {
		return fmt.Errorf("merging config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, normalizes and validates the configuration
func finalizeConfig(k *koanf.Koanf, path string) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for i, category := range cfg.Categories {
		cfg.Categories[i] = strings.TrimSpace(category)
	}
	cfg.Naming = strings.ToLower(strings.TrimSpace(cfg.Naming))
	if cfg.Naming == "" {
		cfg.Naming = string(naming.Buzzword)
	}

	if err := ValidateConfigValues(&cfg, path); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// envTransform converts environment variable names to config keys
// Example: TINYCHANGE_MAX_FILENAME_LENGTH -> max_filename_length
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// envValue maps an environment variable onto its config key and value.
// List keys take a comma-separated value.
func envValue(key, value string) (string, interface{}) {
	key = envTransform(key)
	if key != "categories" {
		return key, value
	}
	var categories []string
	for _, category := range strings.Split(value, ",") {
		if category = strings.TrimSpace(category); category != "" {
			categories = append(categories, category)
		}
	}
	return key, categories
}
