package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/carpsesdema/refactorkit/internal/batch"
	"github.com/carpsesdema/refactorkit/internal/refactor"
	"github.com/carpsesdema/refactorkit/internal/types"
)

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderResult(c *cli.Context, result *batch.Result) error {
	if c.Bool("json") {
		return emitJSON(result)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Line", "Severity", "Rule", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})
	for _, report := range result.Reports {
		if report.Error != "" {
			table.Append([]string{report.Path, "", "error", "", report.Error})
		}
		for _, issue := range report.Issues {
			table.Append([]string{
				report.Path,
				strconv.Itoa(issue.Line),
				issue.Severity.String(),
				issue.Rule,
				issue.Message,
			})
		}
	}
	table.Render()

	fmt.Printf("\n%d files, %d issues\n", result.Files, result.IssueCount)
	if result.Incomplete {
		fmt.Println("scan interrupted; results are partial")
	}
	return nil
}

func renderPlan(path string, plan refactor.PlanResult, result *types.FixResult) {
	fmt.Printf("%s: %d fixes planned, %d applied\n", path, len(plan.Edits), result.AppliedCount)
	for _, e := range plan.Edits {
		fmt.Printf("  line %d: %s\n", e.Line, e.Rule)
	}
	for _, s := range plan.Skipped {
		fmt.Printf("  skipped %s (line %d): %s\n", s.Edit.Rule, s.Edit.Line, s.Reason)
	}
	for _, s := range result.Skipped {
		fmt.Printf("  skipped %s (line %d): %s\n", s.Edit.Rule, s.Edit.Line, s.Reason)
	}
	fmt.Println("run again with --write to apply, or --stdout to preview")
}

func renderClusters(c *cli.Context, clusters []types.DuplicateCluster) error {
	if c.Bool("json") {
		return emitJSON(clusters)
	}
	if len(clusters) == 0 {
		fmt.Println("no duplicate clusters")
		return nil
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Cluster", "Similarity", "Members"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	for i, cluster := range clusters {
		members := make([]string, len(cluster.Members))
		for j, m := range cluster.Members {
			members[j] = fmt.Sprintf("%s:%d-%d", m.Name, m.StartLine, m.EndLine)
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.2f", cluster.Similarity),
			strings.Join(members, ", "),
		})
	}
	table.Render()
	return nil
}

func renderSplit(c *cli.Context, unit *types.SourceUnit, plan *types.SplitPlan) error {
	if c.Bool("json") {
		return emitJSON(plan)
	}
	if plan == nil {
		fmt.Printf("%s: %d lines, under the split threshold\n", unit.Path, unit.LineCount())
		return nil
	}
	fmt.Printf("%s: %d lines (threshold %d), proposing %d buckets\n",
		unit.Path, plan.TotalLines, plan.Threshold, len(plan.Buckets))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Bucket", "Lines", "Definitions"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	for _, b := range plan.Buckets {
		table.Append([]string{b.Name, strconv.Itoa(b.Lines), strings.Join(b.Definitions, ", ")})
	}
	table.Render()

	if len(plan.CrossEdges) > 0 {
		fmt.Println("\ncross-bucket references (would need imports):")
		for _, e := range plan.CrossEdges {
			fmt.Printf("  %s (%s) -> %s (%s)\n", e.From, e.FromBucket, e.To, e.ToBucket)
		}
	}
	return nil
}
