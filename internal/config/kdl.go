package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	rkerrors "github.com/carpsesdema/refactorkit/internal/errors"
)

// ParseKDL parses a .refactorkit.kdl document over the defaults. Unknown
// nodes are ignored so old binaries tolerate newer config files.
//
//	limits {
//	    max_function_lines 50
//	    max_complexity 10
//	}
//	naming_convention "snake_case"
//	import_groups "stdlib" "third-party" "local"
//	files {
//	    include "**/*.py"
//	    exclude "build/**"
//	}
//	workers 4
func ParseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, rkerrors.NewConfigError("kdl", "", fmt.Errorf("parse: %w", err))
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "limits":
			for _, cn := range n.Children {
				v, ok := firstIntArg(cn)
				if !ok {
					continue
				}
				switch nodeName(cn) {
				case "max_function_lines":
					cfg.MaxFunctionLines = v
				case "max_class_lines":
					cfg.MaxClassLines = v
				case "max_params":
					cfg.MaxParams = v
				case "max_nesting":
					cfg.MaxNesting = v
				case "max_complexity":
					cfg.MaxComplexity = v
				case "max_line_length":
					cfg.MaxLineLength = v
				}
			}
		case "naming_convention":
			if s, ok := firstStringArg(n); ok {
				cfg.NamingConvention = s
			}
		case "import_groups":
			if groups := collectStringArgs(n); len(groups) > 0 {
				cfg.ImportGroups = groups
			}
		case "split":
			for _, cn := range n.Children {
				if nodeName(cn) == "large_file_threshold" {
					if v, ok := firstIntArg(cn); ok {
						cfg.LargeFileThreshold = v
					}
				}
			}
		case "duplicates":
			for _, cn := range n.Children {
				if nodeName(cn) == "min_statements" {
					if v, ok := firstIntArg(cn); ok {
						cfg.DuplicateMinStatements = v
					}
				}
			}
		case "files":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "include":
					cfg.Include = collectStringArgs(cn)
				case "exclude":
					cfg.Exclude = collectStringArgs(cn)
				}
			}
		case "workers":
			if v, ok := firstIntArg(n); ok {
				cfg.Workers = v
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
