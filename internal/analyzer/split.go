package analyzer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/types"
)

type splitDef struct {
	name  string
	node  *types.Node // includes decorators when present
	body  *types.Node
	lines int
}

// PlanSplit proposes a partition of a large file's top-level definitions
// into buckets under the configured threshold. The plan is advisory: it
// names groupings and the cross-bucket references a split would have to
// re-import, and never touches the file. Files at or under the threshold
// yield nil.
func PlanSplit(unit *types.SourceUnit, cfg *config.Config) *types.SplitPlan {
	if unit.Root == nil || unit.LineCount() <= cfg.LargeFileThreshold {
		return nil
	}
	defs := topLevelDefs(unit.Root)
	if len(defs) == 0 {
		return nil
	}
	edges := referenceEdges(unit, defs)

	// Every definition starts alone; referencing definitions merge while
	// the combined group still fits under the threshold.
	group := make([]int, len(defs))
	lines := make([]int, len(defs))
	for i, d := range defs {
		group[i] = i
		lines[i] = d.lines
	}
	find := func(i int) int {
		for group[i] != i {
			group[i] = group[group[i]]
			i = group[i]
		}
		return i
	}
	for _, e := range edges {
		ra, rb := find(e.from), find(e.to)
		if ra == rb {
			continue
		}
		if lines[ra]+lines[rb] <= cfg.LargeFileThreshold {
			group[rb] = ra
			lines[ra] += lines[rb]
		}
	}

	// Pack the groups first-fit-decreasing so small leftovers fill
	// existing buckets instead of spawning single-definition files.
	roots := make([]int, 0, len(defs))
	seen := make(map[int]bool)
	for i := range defs {
		r := find(i)
		if !seen[r] {
			seen[r] = true
			roots = append(roots, r)
		}
	}
	sort.SliceStable(roots, func(i, j int) bool { return lines[roots[i]] > lines[roots[j]] })

	type pack struct {
		groups []int
		lines  int
	}
	var packs []*pack
	for _, r := range roots {
		placed := false
		for _, p := range packs {
			if p.lines+lines[r] <= cfg.LargeFileThreshold {
				p.groups = append(p.groups, r)
				p.lines += lines[r]
				placed = true
				break
			}
		}
		if !placed {
			packs = append(packs, &pack{groups: []int{r}, lines: lines[r]})
		}
	}

	stem := strings.TrimSuffix(filepath.Base(unit.Path), filepath.Ext(unit.Path))
	if stem == "" {
		stem = "module"
	}
	bucketOf := make(map[int]string, len(packs)) // group root -> bucket name
	plan := &types.SplitPlan{Threshold: cfg.LargeFileThreshold, TotalLines: unit.LineCount()}
	for i, p := range packs {
		name := fmt.Sprintf("%s_part%d", stem, i+1)
		bucket := types.SplitBucket{Name: name, Lines: p.lines}
		for _, r := range p.groups {
			bucketOf[r] = name
		}
		for j, d := range defs {
			if bucketOf[find(j)] == name {
				bucket.Definitions = append(bucket.Definitions, d.name)
			}
		}
		plan.Buckets = append(plan.Buckets, bucket)
	}

	for _, e := range edges {
		fromBucket, toBucket := bucketOf[find(e.from)], bucketOf[find(e.to)]
		if fromBucket != toBucket {
			plan.CrossEdges = append(plan.CrossEdges, types.ReferenceEdge{
				From:       defs[e.from].name,
				To:         defs[e.to].name,
				FromBucket: fromBucket,
				ToBucket:   toBucket,
			})
		}
	}
	return plan
}

// topLevelDefs collects named function and class definitions directly under
// the module, looking through decorator wrappers.
func topLevelDefs(root *types.Node) []splitDef {
	var defs []splitDef
	add := func(wrapper, def *types.Node) {
		if def.Name == "" {
			return
		}
		defs = append(defs, splitDef{
			name:  def.Name,
			node:  wrapper,
			body:  def.Body,
			lines: wrapper.LineCount(),
		})
	}
	for _, c := range root.Children {
		switch {
		case c.Kind == types.KindFunction || c.Kind == types.KindClass:
			add(c, c)
		case c.RawKind == "decorated_definition":
			for _, inner := range c.Children {
				if inner.Kind == types.KindFunction || inner.Kind == types.KindClass {
					add(c, inner)
					break
				}
			}
		}
	}
	return defs
}

type defEdge struct {
	from, to int
}

// referenceEdges finds, for each definition, which sibling definitions its
// body mentions by name. One edge per (from, to) pair.
func referenceEdges(unit *types.SourceUnit, defs []splitDef) []defEdge {
	index := make(map[string]int, len(defs))
	for i, d := range defs {
		index[d.name] = i
	}
	var edges []defEdge
	for i, d := range defs {
		if d.body == nil {
			continue
		}
		found := make(map[int]bool)
		d.body.Visit(func(n *types.Node) bool {
			if n.Kind == types.KindIdentifier {
				if j, ok := index[unit.Slice(n.Range)]; ok && j != i {
					found[j] = true
				}
			}
			return true
		})
		targets := make([]int, 0, len(found))
		for j := range found {
			targets = append(targets, j)
		}
		sort.Ints(targets)
		for _, j := range targets {
			edges = append(edges, defEdge{from: i, to: j})
		}
	}
	return edges
}
