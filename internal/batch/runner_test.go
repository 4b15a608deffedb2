package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/carpsesdema/refactorkit/internal/analyzer"
	"github.com/carpsesdema/refactorkit/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestRunAnalyzesMatchingFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"clean.py":          "def main():\n    \"\"\"D.\"\"\"\n    return 0\n",
		"messy.py":          "x = 1   \n",
		"sub/also.py":       "y = 2\t\n",
		"notes.txt":         "not source\n",
		"venv/ignored.py":   "z = 3   \n",
		".git/config":       "[core]\n",
		"__pycache__/a.py":  "cached = 1   \n",
		"node_modules/m.py": "m = 1   \n",
	})

	runner := NewRunner(analyzer.New(), config.Default())
	result, err := runner.Run(context.Background(), root)
	require.NoError(t, err)

	assert.False(t, result.Incomplete)
	require.Equal(t, 3, result.Files)

	paths := make([]string, len(result.Reports))
	for i, r := range result.Reports {
		rel, err := filepath.Rel(root, r.Path)
		require.NoError(t, err)
		paths[i] = filepath.ToSlash(rel)
	}
	assert.Equal(t, []string{"clean.py", "messy.py", "sub/also.py"}, paths)

	assert.Empty(t, result.Reports[0].Issues)
	assert.NotEmpty(t, result.Reports[1].Issues)
	assert.Equal(t, 2, result.IssueCount)
}

func TestRunRespectsExcludeGlobs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep.py":          "k = 1\n",
		"generated/gen.py": "g = 1\n",
	})
	cfg := config.Default()
	cfg.Exclude = append(cfg.Exclude, "generated/**")

	result, err := NewRunner(analyzer.New(), cfg).Run(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 1, result.Files)
	assert.Equal(t, "keep.py", filepath.Base(result.Reports[0].Path))
}

func TestRunCancelledContextIsIncomplete(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "a = 1\n",
		"b.py": "b = 2\n",
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(analyzer.New(), config.Default()).Run(ctx, root)
	require.NoError(t, err)
	assert.True(t, result.Incomplete)
	assert.Less(t, result.Files, 2)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 0
	_, err := NewRunner(analyzer.New(), cfg).Run(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestRunReportsUnreadableSyntax(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.py": "def broken(:\n",
	})
	result, err := NewRunner(analyzer.New(), config.Default()).Run(context.Background(), root)
	require.NoError(t, err)
	require.Equal(t, 1, result.Files)
	require.Len(t, result.Reports[0].Issues, 1)
	assert.Equal(t, analyzer.RuleSyntax, result.Reports[0].Issues[0].Rule)
}
