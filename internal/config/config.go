// Package config defines the explicit analysis configuration. There is no
// ambient state: every entry point takes a *Config, and a zero-value field
// never silently disables a rule, Validate rejects it instead.
package config

import (
	"fmt"
	"strings"

	rkerrors "github.com/carpsesdema/refactorkit/internal/errors"
	"github.com/carpsesdema/refactorkit/internal/lang"
)

// Config holds every tunable threshold and policy for a run.
type Config struct {
	// Structural thresholds. A scope crossing one yields a Warning.
	MaxFunctionLines int `toml:"max_function_lines"`
	MaxClassLines    int `toml:"max_class_lines"`
	MaxParams        int `toml:"max_params"`
	MaxNesting       int `toml:"max_nesting"`
	MaxComplexity    int `toml:"max_complexity"`

	// Text thresholds.
	MaxLineLength int `toml:"max_line_length"`

	// NamingConvention overrides the per-language default for function
	// names when non-empty ("snake_case", "camelCase", "PascalCase",
	// "MixedCaps").
	NamingConvention string `toml:"naming_convention"`

	// ImportGroups is the required top-to-bottom order of import groups.
	ImportGroups []string `toml:"import_groups"`

	// Split planning and duplicate detection.
	LargeFileThreshold     int `toml:"large_file_threshold"`
	DuplicateMinStatements int `toml:"duplicate_min_statements"`

	// Batch scanning.
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Workers int      `toml:"workers"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		MaxFunctionLines: 50,
		MaxClassLines:    200,
		MaxParams:        6,
		MaxNesting:       4,
		MaxComplexity:    10,
		MaxLineLength:    120,

		ImportGroups: []string{lang.GroupStdlib, lang.GroupThirdParty, lang.GroupLocal},

		LargeFileThreshold:     500,
		DuplicateMinStatements: 5,

		Include: []string{"**/*.py", "**/*.go"},
		Exclude: []string{
			"**/.git/**", "**/node_modules/**", "**/__pycache__/**",
			"**/venv/**", "**/.venv/**", "**/vendor/**",
		},
		Workers: 4,
	}
}

var validGroups = map[string]bool{
	lang.GroupStdlib:     true,
	lang.GroupThirdParty: true,
	lang.GroupLocal:      true,
}

// Validate checks the configuration for internal consistency. Analysis
// entry points call it first; it is the only error they treat as fatal.
func (c *Config) Validate() error {
	if c == nil {
		return rkerrors.NewConfigError("config", "nil", nil)
	}
	positive := []struct {
		field string
		value int
	}{
		{"max_function_lines", c.MaxFunctionLines},
		{"max_class_lines", c.MaxClassLines},
		{"max_params", c.MaxParams},
		{"max_nesting", c.MaxNesting},
		{"max_complexity", c.MaxComplexity},
		{"max_line_length", c.MaxLineLength},
		{"large_file_threshold", c.LargeFileThreshold},
		{"duplicate_min_statements", c.DuplicateMinStatements},
		{"workers", c.Workers},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return rkerrors.NewConfigError(p.field, fmt.Sprintf("%d", p.value), fmt.Errorf("must be positive"))
		}
	}

	if c.NamingConvention != "" && !lang.KnownConvention(c.NamingConvention) {
		return rkerrors.NewConfigError("naming_convention", c.NamingConvention,
			fmt.Errorf("unknown convention"))
	}

	if len(c.ImportGroups) == 0 {
		return rkerrors.NewConfigError("import_groups", "", fmt.Errorf("must name at least one group"))
	}
	seen := make(map[string]bool, len(c.ImportGroups))
	for _, g := range c.ImportGroups {
		if !validGroups[g] {
			return rkerrors.NewConfigError("import_groups", g, fmt.Errorf("unknown group"))
		}
		if seen[g] {
			return rkerrors.NewConfigError("import_groups", g, fmt.Errorf("listed twice"))
		}
		seen[g] = true
	}
	return nil
}

// GroupRank maps an import group name to its configured position. Groups
// the configuration omits sort after all configured ones.
func (c *Config) GroupRank(group string) int {
	for i, g := range c.ImportGroups {
		if g == group {
			return i
		}
	}
	return len(c.ImportGroups)
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{fn=%d class=%d params=%d nest=%d cx=%d line=%d groups=%s}",
		c.MaxFunctionLines, c.MaxClassLines, c.MaxParams, c.MaxNesting,
		c.MaxComplexity, c.MaxLineLength, strings.Join(c.ImportGroups, ","))
}
