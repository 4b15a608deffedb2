package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	rkerrors "github.com/carpsesdema/refactorkit/internal/errors"
)

// Project config file names, in lookup order.
const (
	kdlFileName  = ".refactorkit.kdl"
	tomlFileName = "refactorkit.toml"
)

// Load reads a configuration file, dispatching on extension (.kdl or
// .toml), and validates the result.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, rkerrors.NewConfigError("file", path, err)
	}
	switch filepath.Ext(path) {
	case ".kdl":
		return ParseKDL(string(content))
	case ".toml":
		return ParseTOML(content)
	default:
		return nil, rkerrors.NewConfigError("file", path, fmt.Errorf("unsupported config format"))
	}
}

// ParseTOML parses TOML configuration over the defaults.
func ParseTOML(content []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, rkerrors.NewConfigError("toml", "", fmt.Errorf("parse: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadProject looks for a config file in root (.refactorkit.kdl first,
// refactorkit.toml second) and returns defaults when neither exists.
func LoadProject(root string) (*Config, error) {
	for _, name := range []string{kdlFileName, tomlFileName} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}
