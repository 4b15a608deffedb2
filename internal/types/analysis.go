package types

// Scope holds the metrics derived for one function or class node during a
// single analysis pass. Scopes are computed, never stored on the tree.
type Scope struct {
	Node     *Node
	Name     string
	Kind     NodeKind
	IsMethod bool

	StartLine    int
	EndLine      int
	LineCount    int
	Complexity   int
	MaxNesting   int
	ParamCount   int
	HasDocstring bool

	// Params excludes any self-like receiver for methods.
	Params []string
}

// ClusterMember is one function participating in a duplicate cluster.
type ClusterMember struct {
	Name      string    `json:"name"`
	StartLine int       `json:"start_line"`
	EndLine   int       `json:"end_line"`
	Range     ByteRange `json:"range"`
}

// DuplicateCluster groups functions whose normalized body fingerprints
// match. A cluster always has at least two members. Similarity is a
// normalized edit-distance score over the members' raw text: 1.0 means the
// bodies are byte-identical, lower values indicate structural duplicates
// that differ in names or literals.
type DuplicateCluster struct {
	Fingerprint uint64          `json:"fingerprint"`
	Members     []ClusterMember `json:"members"`
	Similarity  float64         `json:"similarity"`
}

// ReferenceEdge records that one top-level definition's body references
// another top-level definition's name.
type ReferenceEdge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	FromBucket string `json:"from_bucket,omitempty"`
	ToBucket   string `json:"to_bucket,omitempty"`
}

// SplitBucket is one proposed module grouping in a SplitPlan.
type SplitBucket struct {
	Name        string   `json:"name"`
	Definitions []string `json:"definitions"`
	Lines       int      `json:"lines"`
}

// SplitPlan is an advisory partition of a large file's top-level
// definitions into smaller module groupings. It is never applied by the
// core; creating files is the caller's responsibility.
type SplitPlan struct {
	Threshold  int             `json:"threshold"`
	TotalLines int             `json:"total_lines"`
	Buckets    []SplitBucket   `json:"buckets"`
	CrossEdges []ReferenceEdge `json:"cross_edges,omitempty"`
}
