// Package report renders the flat per-node import-count view of a graph.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"depmap/internal/graph"
)

// Format is the report output format
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatHuman Format = "human"
)

// Node is one row of the flat report.
type Node struct {
	ID          string   `json:"id" yaml:"id"`
	ImportCount int      `json:"importCount" yaml:"importCount"`
	Imports     []string `json:"imports,omitempty" yaml:"imports,omitempty"`
}

// Report is the flat per-node import-count table.
type Report struct {
	BuildID      string `json:"buildId,omitempty" yaml:"buildId,omitempty"`
	Root         string `json:"root,omitempty" yaml:"root,omitempty"`
	TotalNodes   int    `json:"totalNodes" yaml:"totalNodes"`
	TotalEdges   int    `json:"totalEdges" yaml:"totalEdges"`
	FilesScanned int    `json:"filesScanned" yaml:"filesScanned"`
	Nodes        []Node `json:"nodes" yaml:"nodes"`
}

// FromGraph flattens a graph into a report. Rows are sorted by import count
// descending, then by id, so the most-imported modules come first.
func FromGraph(g graph.Graph) *Report {
	r := &Report{}

	for _, id := range g.AllNodes() {
		adjacent := g.AdjacentNodes(id)
		r.Nodes = append(r.Nodes, Node{
			ID:          id,
			ImportCount: g.ImportCount(id),
			Imports:     adjacent,
		})
		r.TotalEdges += len(adjacent)
	}
	r.TotalNodes = len(r.Nodes)

	sort.Slice(r.Nodes, func(i, j int) bool {
		if r.Nodes[i].ImportCount != r.Nodes[j].ImportCount {
			return r.Nodes[i].ImportCount > r.Nodes[j].ImportCount
		}
		return r.Nodes[i].ID < r.Nodes[j].ID
	})

	return r
}

// Render formats the report according to the requested format.
func (r *Report) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("report: marshaling JSON: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("report: marshaling YAML: %w", err)
		}
		return string(data), nil
	case FormatHuman:
		return r.renderHuman(), nil
	default:
		return "", fmt.Errorf("report: unsupported format: %s", format)
	}
}

func (r *Report) renderHuman() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dependency graph: %d nodes, %d edges\n\n", r.TotalNodes, r.TotalEdges)

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tIMPORTED BY\tIMPORTS")
	for _, n := range r.Nodes {
		fmt.Fprintf(w, "%s\t%d\t%s\n", n.ID, n.ImportCount, strings.Join(n.Imports, ", "))
	}
	_ = w.Flush()

	return b.String()
}
