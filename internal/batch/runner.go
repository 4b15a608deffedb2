// Package batch scans a directory tree and analyzes every matching file
// with bounded concurrency. Per-file analysis stays sequential inside one
// worker; only files fan out.
package batch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/carpsesdema/refactorkit/internal/analyzer"
	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// Directories that never contain user source worth scanning.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"venv":         true,
	".venv":        true,
	"vendor":       true,
}

// FileReport is the analysis outcome for one file. Error is set when the
// file could not be read; analysis findings land in Issues.
type FileReport struct {
	Path   string        `json:"path"`
	Issues []types.Issue `json:"issues,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Result aggregates a whole run. Incomplete marks a run cut short by
// cancellation: the reports present are valid, but not every file was
// visited.
type Result struct {
	Reports    []FileReport `json:"reports"`
	Files      int          `json:"files"`
	IssueCount int          `json:"issue_count"`
	Incomplete bool         `json:"incomplete,omitempty"`
}

// Runner drives analysis over a file set.
type Runner struct {
	analyzer *analyzer.Analyzer
	cfg      *config.Config
}

func NewRunner(a *analyzer.Analyzer, cfg *config.Config) *Runner {
	return &Runner{analyzer: a, cfg: cfg}
}

// Run walks root, matches files against the configured include/exclude
// globs, and analyzes each with at most cfg.Workers in flight. The context
// is checked between files: cancellation stops scheduling and returns the
// partial result tagged Incomplete, not an error.
func (r *Runner) Run(ctx context.Context, root string) (*Result, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	paths, err := r.collect(root)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, path := range paths {
		if gctx.Err() != nil {
			res.Incomplete = true
			break
		}
		g.Go(func() error {
			report := r.analyzeFile(path)
			mu.Lock()
			res.Reports = append(res.Reports, report)
			res.IssueCount += len(report.Issues)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		res.Incomplete = true
	}

	sort.Slice(res.Reports, func(i, j int) bool { return res.Reports[i].Path < res.Reports[j].Path })
	res.Files = len(res.Reports)
	return res, nil
}

func (r *Runner) analyzeFile(path string) FileReport {
	report := FileReport{Path: path}
	text, err := os.ReadFile(path)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	_, issues, err := r.analyzer.Analyze(path, text, r.cfg)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Issues = issues
	return report
}

// collect walks root and returns the sorted set of matching file paths.
// Globs match the slash-separated path relative to root.
func (r *Runner) collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if r.matches(filepath.ToSlash(rel)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *Runner) matches(rel string) bool {
	for _, pat := range r.cfg.Exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return false
		}
	}
	for _, pat := range r.cfg.Include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}
