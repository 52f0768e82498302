package spec

import "strings"

// Graph is the immutable document dependency graph for one batch: an
// arena of nodes plus index-based adjacency lists. Nodes are document
// ids; edges follow declared dependencies whose target is also in the
// batch.
type Graph struct {
	nodes []graphNode
	index map[string]int
	edges [][]int
}

type graphNode struct {
	id   string
	file string
}

// BuildGraph constructs the graph from the batch documents in input
// order. Duplicate document ids are reported per declaring file and
// excluded from the arena entirely, so no ambiguous edges are built.
// Dependencies on ids absent from the batch are reported once per
// (document, missing id) pair; edges onto excluded duplicate ids are
// dropped without a dangling report, since the identity issues already
// name them.
func BuildGraph(docs []*Document) (*Graph, []Issue) {
	var issues []Issue

	seen := make(map[string]int)
	for _, doc := range docs {
		if id := doc.ID(); id != "" {
			seen[id]++
		}
	}
	duplicate := make(map[string]bool)
	for id, count := range seen {
		if count > 1 {
			duplicate[id] = true
		}
	}
	for _, doc := range docs {
		if id := doc.ID(); duplicate[id] {
			issues = append(issues, issuef(CategoryIdentity, doc.Path,
				"duplicate document id: %s", id))
		}
	}

	g := &Graph{index: make(map[string]int)}
	arena := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		id := doc.ID()
		if id == "" || duplicate[id] {
			continue
		}
		g.index[id] = len(g.nodes)
		g.nodes = append(g.nodes, graphNode{id: id, file: doc.Path})
		arena = append(arena, doc)
	}

	g.edges = make([][]int, len(g.nodes))
	for i, doc := range arena {
		for _, dep := range doc.Dependencies() {
			target, ok := g.index[dep]
			if !ok {
				if !duplicate[dep] {
					issues = append(issues, issuef(CategoryGraph, doc.Path,
						"dangling dependency: %s", dep))
				}
				continue
			}
			g.edges[i] = append(g.edges[i], target)
		}
	}

	return g, issues
}

// Node colors for depth-first traversal.
const (
	colorWhite = iota // unvisited
	colorGray         // in progress
	colorBlack        // done
)

// DetectCycles runs a three-color depth-first traversal and reports each
// cycle with its full path. Disjoint cycles each produce one issue.
func (g *Graph) DetectCycles() []Issue {
	var issues []Issue
	color := make([]int, len(g.nodes))
	var stack []int

	var visit func(n int)
	visit = func(n int) {
		color[n] = colorGray
		stack = append(stack, n)

		for _, m := range g.edges[n] {
			switch color[m] {
			case colorWhite:
				visit(m)
			case colorGray:
				// Back edge: the in-progress stack from m onward is
				// the cycle.
				start := 0
				for i, s := range stack {
					if s == m {
						start = i
						break
					}
				}
				issues = append(issues, issuef(CategoryGraph, g.nodes[m].file,
					"dependency cycle: %s", g.cyclePath(stack[start:], m)))
			}
		}

		stack = stack[:len(stack)-1]
		color[n] = colorBlack
	}

	for n := range g.nodes {
		if color[n] == colorWhite {
			visit(n)
		}
	}

	return issues
}

// cyclePath renders `a -> b -> c -> a` for the given stack segment.
func (g *Graph) cyclePath(segment []int, closing int) string {
	parts := make([]string, 0, len(segment)+1)
	for _, n := range segment {
		parts = append(parts, g.nodes[n].id)
	}
	parts = append(parts, g.nodes[closing].id)
	return strings.Join(parts, " -> ")
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}
