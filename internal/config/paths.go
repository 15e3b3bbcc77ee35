package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigName is the config file created by `tinychange init`.
const DefaultConfigName = "tinychange.toml"

// configNames lists the config file names searched for, in order.
var configNames = []string{
	"tinychange.toml",
	"tinychange.yml",
	"tinychange.yaml",
	"tinychange.json",
}

// ConfigNames returns the config file names searched for, in priority order.
func ConfigNames() []string {
	return append([]string(nil), configNames...)
}

// FindConfigFile returns the first existing config file in dir.
func FindConfigFile(dir string) (string, bool) {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// parserFor selects the koanf parser matching the config file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yml, .yaml or .json)", filepath.Ext(path))
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}
