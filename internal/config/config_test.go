package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rkerrors "github.com/carpsesdema/refactorkit/internal/errors"
	"github.com/carpsesdema/refactorkit/internal/lang"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsNonPositiveThresholds(t *testing.T) {
	cfg := Default()
	cfg.MaxComplexity = 0
	err := cfg.Validate()
	require.Error(t, err)

	var ce *rkerrors.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "max_complexity", ce.Field)
}

func TestValidateRejectsUnknownConvention(t *testing.T) {
	cfg := Default()
	cfg.NamingConvention = "SHOUTING_CASE"
	err := cfg.Validate()
	require.Error(t, err)

	var ce *rkerrors.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "naming_convention", ce.Field)
}

func TestValidateRejectsBadImportGroups(t *testing.T) {
	cfg := Default()
	cfg.ImportGroups = []string{lang.GroupStdlib, "frameworks"}
	require.Error(t, cfg.Validate())

	cfg.ImportGroups = []string{lang.GroupStdlib, lang.GroupStdlib}
	require.Error(t, cfg.Validate())

	cfg.ImportGroups = nil
	require.Error(t, cfg.Validate())
}

func TestGroupRank(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0, cfg.GroupRank(lang.GroupStdlib))
	assert.Equal(t, 1, cfg.GroupRank(lang.GroupThirdParty))
	assert.Equal(t, 2, cfg.GroupRank(lang.GroupLocal))
	assert.Equal(t, 3, cfg.GroupRank("unknown"))
}

func TestParseKDL(t *testing.T) {
	cfg, err := ParseKDL(`
limits {
    max_function_lines 40
    max_complexity 8
}
naming_convention "snake_case"
import_groups "stdlib" "local" "third-party"
split {
    large_file_threshold 300
}
duplicates {
    min_statements 3
}
files {
    include "src/**/*.py"
    exclude "build/**"
}
workers 2
`)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.MaxFunctionLines)
	assert.Equal(t, 8, cfg.MaxComplexity)
	assert.Equal(t, 200, cfg.MaxClassLines, "unset keys keep defaults")
	assert.Equal(t, "snake_case", cfg.NamingConvention)
	assert.Equal(t, []string{"stdlib", "local", "third-party"}, cfg.ImportGroups)
	assert.Equal(t, 300, cfg.LargeFileThreshold)
	assert.Equal(t, 3, cfg.DuplicateMinStatements)
	assert.Equal(t, []string{"src/**/*.py"}, cfg.Include)
	assert.Equal(t, []string{"build/**"}, cfg.Exclude)
	assert.Equal(t, 2, cfg.Workers)
}

func TestParseKDLRejectsInvalidValues(t *testing.T) {
	_, err := ParseKDL("limits {\n    max_params -1\n}\n")
	require.Error(t, err)

	_, err = ParseKDL("limits {\n  broken {\n")
	require.Error(t, err)
}

func TestParseTOML(t *testing.T) {
	cfg, err := ParseTOML([]byte(`
max_function_lines = 30
naming_convention = "camelCase"
workers = 8
`))
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.MaxFunctionLines)
	assert.Equal(t, "camelCase", cfg.NamingConvention)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 4, cfg.MaxNesting, "unset keys keep defaults")
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg, "no config file means defaults")

	kdl := "limits {\n    max_function_lines 25\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".refactorkit.kdl"), []byte(kdl), 0o644))

	cfg, err = LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxFunctionLines)
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refactorkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
