package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/hbollon/go-edlib"

	"github.com/carpsesdema/refactorkit/internal/config"
	"github.com/carpsesdema/refactorkit/internal/types"
)

// fingerprintSep separates tokens in the normalized stream so distinct
// token sequences cannot collide by concatenation.
const fingerprintSep = '\x1f'

// fingerprint hashes the normalized shape of a function body: identifier
// names collapse to one token, literal values to another, every other node
// contributes its grammar kind. Two functions that differ only in naming
// and constants hash identically.
func fingerprint(body *types.Node) uint64 {
	var b strings.Builder
	var walk func(n *types.Node)
	walk = func(n *types.Node) {
		switch n.Kind {
		case types.KindIdentifier:
			b.WriteString("ID")
		case types.KindLiteral:
			// Literal internals (quote tokens, interpolation markers) are
			// value detail, not shape.
			b.WriteString("LIT")
		default:
			b.WriteString(n.RawKind)
		}
		b.WriteByte(fingerprintSep)
		if n.Kind == types.KindLiteral {
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(body)
	return xxhash.Sum64String(b.String())
}

// statementCount tallies statement nodes in a body subtree, without
// descending into nested definitions.
func statementCount(body *types.Node) int {
	count := 0
	body.Visit(func(n *types.Node) bool {
		if n != body && (n.Kind == types.KindFunction || n.Kind == types.KindClass) {
			return false
		}
		if n.Kind == types.KindStatement || n.Kind == types.KindImport {
			count++
		}
		return true
	})
	return count
}

type dupCandidate struct {
	name string
	node *types.Node
	hash uint64
}

// FindDuplicates clusters functions with matching body fingerprints.
// Bodies below the configured statement minimum never participate, so
// trivial accessors do not flood the results.
func FindDuplicates(unit *types.SourceUnit, cfg *config.Config) []types.DuplicateCluster {
	if unit.Root == nil {
		return nil
	}
	var cands []dupCandidate
	unit.Root.Visit(func(n *types.Node) bool {
		if n.Kind == types.KindFunction && n.Body != nil &&
			statementCount(n.Body) >= cfg.DuplicateMinStatements {
			cands = append(cands, dupCandidate{name: n.Name, node: n, hash: fingerprint(n.Body)})
		}
		return true
	})
	if len(cands) < 2 {
		return nil
	}

	// Union-find over candidates; equal fingerprints merge transitively.
	parent := make([]int, len(cands))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}
	firstWithHash := make(map[uint64]int, len(cands))
	for i, c := range cands {
		if j, ok := firstWithHash[c.hash]; ok {
			union(j, i)
		} else {
			firstWithHash[c.hash] = i
		}
	}

	groups := make(map[int][]dupCandidate)
	for i, c := range cands {
		root := find(i)
		groups[root] = append(groups[root], c)
	}

	var clusters []types.DuplicateCluster
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].node.Start.Line < group[j].node.Start.Line
		})
		cluster := types.DuplicateCluster{
			Fingerprint: group[0].hash,
			Similarity:  clusterSimilarity(unit, group),
		}
		for _, c := range group {
			cluster.Members = append(cluster.Members, types.ClusterMember{
				Name:      c.name,
				StartLine: c.node.Start.Line,
				EndLine:   c.node.End.Line,
				Range:     c.node.Range,
			})
		}
		clusters = append(clusters, cluster)
	}
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Members[0].StartLine < clusters[j].Members[0].StartLine
	})
	return clusters
}

// clusterSimilarity scores how close the members' raw bodies are, averaged
// against the first member. Structural duplicates that differ only in
// names and literals score below 1.0.
func clusterSimilarity(unit *types.SourceUnit, group []dupCandidate) float64 {
	base := unit.Slice(group[0].node.Body.Range)
	total := 0.0
	for _, c := range group[1:] {
		score, err := edlib.StringsSimilarity(base, unit.Slice(c.node.Body.Range), edlib.Levenshtein)
		if err != nil {
			continue
		}
		total += float64(score)
	}
	return total / float64(len(group)-1)
}

// duplicateIssues renders one Suggestion per cluster at its first member.
// Extraction is never auto-planned; merging duplicates is a judgment call.
func duplicateIssues(clusters []types.DuplicateCluster) []types.Issue {
	var issues []types.Issue
	for _, c := range clusters {
		names := make([]string, len(c.Members))
		locs := make([]string, len(c.Members))
		for i, m := range c.Members {
			names[i] = m.Name
			locs[i] = fmt.Sprintf("%s:%d", m.Name, m.StartLine)
		}
		first := c.Members[0]
		issues = append(issues, types.Issue{
			Rule:       RuleDuplicateCode,
			Severity:   types.SeveritySuggestion,
			Line:       first.StartLine,
			EndLine:    first.EndLine,
			Message:    fmt.Sprintf("%d functions share the same structure: %s", len(c.Members), strings.Join(locs, ", ")),
			Suggestion: fmt.Sprintf("extract the shared logic of %s into one function", strings.Join(names, ", ")),
		})
	}
	return issues
}
