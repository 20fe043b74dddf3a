// Package graph provides the directed dependency graph built from import scans.
package graph

import (
	"sort"
	"sync"
)

// Graph is the capability set external consumers (reports, visualization)
// are built against, independent of the concrete representation.
type Graph interface {
	AddNode(id string)
	AddEdge(from, to string)
	RemoveNode(id string)
	RemoveEdge(from, to string)
	ImportCount(id string) int
	AdjacentNodes(id string) []string
	AllNodes() []string
	HasNode(id string) bool
	HasEdge(from, to string) bool
}

// DependencyGraph is a directed graph keyed by normalized node identity.
//
// Direction convention: AddEdge(importer, imported). Adjacency reads
// "importer depends on imported", and a node's import count is the number of
// distinct files that import it (its in-degree over the deduplicated edge set).
type DependencyGraph struct {
	mu sync.RWMutex

	// Outgoing adjacency sets, deduplicated.
	adjacency map[string]map[string]struct{}

	// In-reference counters. Incremented only on first insertion of a
	// distinct edge, so a counter always equals the node's in-degree.
	importCounts map[string]int
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		adjacency:    make(map[string]map[string]struct{}),
		importCounts: make(map[string]int),
	}
}

// AddNode creates the node if absent. Idempotent.
func (g *DependencyGraph) AddNode(id string) {
	if id == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addNodeLocked(id)
}

func (g *DependencyGraph) addNodeLocked(id string) {
	if _, ok := g.adjacency[id]; ok {
		return
	}
	g.adjacency[id] = make(map[string]struct{})
	g.importCounts[id] = 0
}

// AddEdge inserts a directed edge from -> to, creating both endpoints if
// needed. Inserting the same edge twice is a full no-op: the adjacency set
// deduplicates, and the counter on `to` increments only on first insertion.
func (g *DependencyGraph) AddEdge(from, to string) {
	if from == "" || to == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addNodeLocked(from)
	g.addNodeLocked(to)

	if _, exists := g.adjacency[from][to]; exists {
		return
	}
	g.adjacency[from][to] = struct{}{}
	g.importCounts[to]++
}

// RemoveNode removes the node, its outgoing set, and its membership in every
// other node's adjacency set. Counters are not rebalanced; removal is a
// structural edit and a follow-up recompute is the caller's concern.
func (g *DependencyGraph) RemoveNode(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.adjacency, id)
	delete(g.importCounts, id)
	for _, targets := range g.adjacency {
		delete(targets, id)
	}
}

// RemoveEdge removes `to` from `from`'s adjacency set. The counter on `to`
// is untouched.
func (g *DependencyGraph) RemoveEdge(from, to string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if targets, ok := g.adjacency[from]; ok {
		delete(targets, to)
	}
}

// ImportCount returns the node's stored in-reference counter, or zero for an
// unknown node. Never fails.
func (g *DependencyGraph) ImportCount(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.importCounts[id]
}

// AdjacentNodes returns a sorted copy of the node's outgoing adjacency set.
// Empty for an unknown node.
func (g *DependencyGraph) AdjacentNodes(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	targets, ok := g.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(targets))
	for t := range targets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// AllNodes returns a sorted snapshot of the current node set.
func (g *DependencyGraph) AllNodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.adjacency))
	for id := range g.adjacency {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// HasNode reports whether the node exists.
func (g *DependencyGraph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[id]
	return ok
}

// HasEdge reports whether the directed edge from -> to exists.
func (g *DependencyGraph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	targets, ok := g.adjacency[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// GraphStats summarizes the graph.
type GraphStats struct {
	TotalNodes int `json:"totalNodes"`
	TotalEdges int `json:"totalEdges"`
}

// Stats returns node and edge counts.
func (g *DependencyGraph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{TotalNodes: len(g.adjacency)}
	for _, targets := range g.adjacency {
		stats.TotalEdges += len(targets)
	}
	return stats
}

var _ Graph = (*DependencyGraph)(nil)
