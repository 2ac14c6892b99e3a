package graph

import (
	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/coloring"
)

// IsProperColoring reports whether every node's payload, converted to a
// color via toColor, differs from each of its neighbors' colors.
//
// It corroborates the hand-rolled adjacency check the verifier performs
// per opened edge (spec.md §4.3 step 5) by instead asking gonum's own
// coloring package to validate the *entire* coloring at once: a full
// assignment is handed to coloring.Dsatur as a "partial" coloring, which
// gonum validates node-by-node against every graph edge before doing any
// further coloring work, returning ErrInvalidPartialColoring on the first
// adjacent pair that shares a color.
func IsProperColoring[T any](g *Graph[T], toColor func(T) int) (bool, error) {
	partial := make(map[int64]int, NumNodes)
	for i := 0; i < NumNodes; i++ {
		partial[int64(i)] = toColor(g.nodes[i])
	}

	var und gonumgraph.Undirected = g.backing
	_, _, err := coloring.Dsatur(und, partial)
	if err == coloring.ErrInvalidPartialColoring {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
