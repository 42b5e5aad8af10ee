// Package topo builds the adjacency view of a project graph and provides
// the deterministic topological ordering used by every analysis pass.
//
// Ordering uses Kahn's algorithm bounded by the node count, so a cyclic
// input degrades to a partial order instead of looping; the residual nodes
// are reported for the validator to flag.
package topo

import "github.com/gridwright/oneline/pkg/model"

// Topology is the adjacency/indegree view of one graph, immutable once
// built.
type Topology struct {
	nodeIDs  []string
	parents  map[string][]string
	children map[string][]string
	present  map[string]bool
}

// New builds a Topology from the graph's nodes and edges. Edges referencing
// unknown node ids are skipped; the validator reports them separately.
func New(g *model.Graph) *Topology {
	t := &Topology{
		nodeIDs:  make([]string, 0, len(g.Nodes)),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		present:  make(map[string]bool, len(g.Nodes)),
	}
	for i := range g.Nodes {
		id := g.Nodes[i].ID
		t.nodeIDs = append(t.nodeIDs, id)
		t.present[id] = true
	}
	for i := range g.Edges {
		edge := &g.Edges[i]
		if !t.present[edge.From] || !t.present[edge.To] {
			continue
		}
		t.children[edge.From] = append(t.children[edge.From], edge.To)
		t.parents[edge.To] = append(t.parents[edge.To], edge.From)
	}
	return t
}

// NodeIDs returns all node ids in input order.
func (t *Topology) NodeIDs() []string {
	return t.nodeIDs
}

// Children returns the downstream neighbor ids of a node.
func (t *Topology) Children(id string) []string {
	return t.children[id]
}

// Parents returns the upstream neighbor ids of a node.
func (t *Topology) Parents(id string) []string {
	return t.parents[id]
}

// Order is the result of a topological sort. When Complete is false the
// graph contains at least one cycle and Unreached lists the node ids left
// out of Sorted.
type Order struct {
	Sorted    []string
	Unreached []string
	Complete  bool
}

// Order computes a topological order with Kahn's algorithm: nodes with
// indegree zero are emitted first, ties broken by input order. Iteration is
// bounded by the node count, so cyclic graphs terminate with a partial
// order.
func (t *Topology) Order() Order {
	indegree := make(map[string]int, len(t.nodeIDs))
	for _, id := range t.nodeIDs {
		indegree[id] = len(t.parents[id])
	}

	queue := make([]string, 0, len(t.nodeIDs))
	for _, id := range t.nodeIDs {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(t.nodeIDs))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		for _, child := range t.children[current] {
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	order := Order{Sorted: sorted, Complete: len(sorted) == len(t.nodeIDs)}
	if !order.Complete {
		inSorted := make(map[string]bool, len(sorted))
		for _, id := range sorted {
			inSorted[id] = true
		}
		for _, id := range t.nodeIDs {
			if !inSorted[id] {
				order.Unreached = append(order.Unreached, id)
			}
		}
	}
	return order
}

// HasCycle reports whether the graph contains a directed cycle.
func (t *Topology) HasCycle() bool {
	return !t.Order().Complete
}

// RollUp aggregates local values toward the sources: walking the
// topological order in reverse, each node's aggregate is its local value
// plus the already-aggregated values of its children. Nodes left unreached
// by a cyclic input keep their local values only.
func (t *Topology) RollUp(local map[string]float64) map[string]float64 {
	aggregate := make(map[string]float64, len(t.nodeIDs))
	for _, id := range t.nodeIDs {
		aggregate[id] = local[id]
	}
	order := t.Order()
	for i := len(order.Sorted) - 1; i >= 0; i-- {
		id := order.Sorted[i]
		for _, child := range t.children[id] {
			aggregate[id] += aggregate[child]
		}
	}
	return aggregate
}
