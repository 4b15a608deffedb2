package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/carpsesdema/refactorkit/internal/analyzer"
	"github.com/carpsesdema/refactorkit/internal/batch"
	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/refactor"
)

var version = "0.3.0"

// loadConfigWithOverrides loads configuration and applies CLI flag overrides.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadProject(".")
	}
	if err != nil {
		return nil, err
	}

	overrides := map[string]*int{
		"max-function-lines": &cfg.MaxFunctionLines,
		"max-class-lines":    &cfg.MaxClassLines,
		"max-params":         &cfg.MaxParams,
		"max-nesting":        &cfg.MaxNesting,
		"max-complexity":     &cfg.MaxComplexity,
		"max-line-length":    &cfg.MaxLineLength,
		"workers":            &cfg.Workers,
	}
	for flag, target := range overrides {
		if c.IsSet(flag) {
			*target = c.Int(flag)
		}
	}
	if c.IsSet("naming") {
		cfg.NamingConvention = c.String("naming")
	}
	if include := c.StringSlice("include"); len(include) > 0 {
		cfg.Include = include
	}
	if exclude := c.StringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "refactorkit",
		Usage:                  "Structural analysis and mechanical refactoring for Python and Go",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config file path (.kdl or .toml)"},
			&cli.BoolFlag{Name: "json", Usage: "Emit JSON instead of tables"},
			&cli.IntFlag{Name: "max-function-lines", Usage: "Override max function lines"},
			&cli.IntFlag{Name: "max-class-lines", Usage: "Override max class lines"},
			&cli.IntFlag{Name: "max-params", Usage: "Override max parameter count"},
			&cli.IntFlag{Name: "max-nesting", Usage: "Override max nesting depth"},
			&cli.IntFlag{Name: "max-complexity", Usage: "Override max cyclomatic complexity"},
			&cli.IntFlag{Name: "max-line-length", Usage: "Override max line length"},
			&cli.StringFlag{Name: "naming", Usage: "Function naming convention override"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "Concurrent files during directory scans"},
			&cli.StringSliceFlag{Name: "include", Usage: "Include glob (repeatable)"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Extra exclude glob (repeatable)"},
		},
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "Report issues for a file or directory tree",
				ArgsUsage: "[path]",
				Action:    runAnalyze,
			},
			{
				Name:      "fix",
				Usage:     "Apply mechanical fixes for auto-fixable issues",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "Rewrite the file in place"},
					&cli.BoolFlag{Name: "stdout", Usage: "Print the fixed text to stdout"},
				},
				Action: runFix,
			},
			{
				Name:      "dupes",
				Usage:     "List duplicate function clusters in a file",
				ArgsUsage: "[file]",
				Action:    runDupes,
			},
			{
				Name:      "split",
				Usage:     "Propose a module split for a large file",
				ArgsUsage: "[file]",
				Action:    runSplit,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func targetPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	path := targetPath(c)
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	a := analyzer.New()

	if info.IsDir() {
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		result, err := batch.NewRunner(a, cfg).Run(ctx, path)
		if err != nil {
			return err
		}
		return renderResult(c, result)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, issues, err := a.Analyze(path, text, cfg)
	if err != nil {
		return err
	}
	return renderResult(c, &batch.Result{
		Reports:    []batch.FileReport{{Path: path, Issues: issues}},
		Files:      1,
		IssueCount: len(issues),
	})
}

func runFix(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	path := targetPath(c)
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	a := analyzer.New()
	unit, issues, err := a.Analyze(path, text, cfg)
	if err != nil {
		return err
	}
	plan := refactor.Plan(unit, issues, cfg)
	result, err := refactor.Apply(unit, plan.Edits)
	if err != nil {
		return err
	}

	switch {
	case c.Bool("stdout"):
		fmt.Print(result.NewText)
	case c.Bool("write"):
		if result.AppliedCount > 0 {
			if err := writeInPlace(path, result.NewText); err != nil {
				return err
			}
		}
		fmt.Printf("%s: applied %d fixes, skipped %d\n", path, result.AppliedCount, len(result.Skipped)+len(plan.Skipped))
	default:
		renderPlan(path, plan, result)
	}
	return nil
}

// writeInPlace replaces path atomically: write a sibling temp file, then
// rename over the original.
func writeInPlace(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".refactorkit-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, info.Mode()); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func runDupes(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	path := targetPath(c)
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	unit, _, err := analyzer.New().Analyze(path, text, cfg)
	if err != nil {
		return err
	}
	return renderClusters(c, analyzer.FindDuplicates(unit, cfg))
}

func runSplit(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	path := targetPath(c)
	text, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	unit, _, err := analyzer.New().Analyze(path, text, cfg)
	if err != nil {
		return err
	}
	return renderSplit(c, unit, analyzer.PlanSplit(unit, cfg))
}
