// Package classgraph builds a lattice graph from inferred inheritance
// edges for DOT export. Edges are heuristic; the graph is a visualization
// aid, not a verified hierarchy.
package classgraph

import (
	"github.com/zboralski/lattice"

	"sodump/internal/classmodel"
	"sodump/internal/vtable"
)

// Build constructs a graph where every reconstructed class is a node and
// every inferred base-to-derived relation is an edge. Self edges, which the
// typeinfo phrasing heuristic produces for classes naming themselves,
// are dropped; they carry no hierarchy information.
func Build(models []classmodel.ClassModel, edges []vtable.Edge) *lattice.Graph {
	g := &lattice.Graph{}
	for _, m := range models {
		g.Nodes = append(g.Nodes, m.Name)
	}
	for _, e := range edges {
		if e.Base == e.Derived {
			continue
		}
		g.Edges = append(g.Edges, lattice.Edge{
			Caller: e.Base,
			Callee: e.Derived,
		})
	}
	g.Dedup()
	return g
}
