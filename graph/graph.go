// Package graph implements the colored-graph data model used by the
// Sudoku→graph reduction and the commitment protocol: a fixed 90-node,
// deterministically-ordered edge set whose proper 9-coloring corresponds to
// a valid Sudoku completion.
package graph

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/sudokuzkp/sudokuzkp/codec"
)

// NumNodes is the number of graph nodes: 81 cell nodes plus 9 palette
// anchors, one per color.
const NumNodes = 90

// Edge is an unordered pair of node indices, canonicalized so A < B.
type Edge struct {
	A, B int
}

// NewEdge builds a canonical Edge, ordering its endpoints.
func NewEdge(a, b int) Edge {
	if a < b {
		return Edge{A: a, B: b}
	}
	return Edge{A: b, B: a}
}

// Size is the codec-encoded size of an Edge: two 8-byte little-endian ints.
func (e Edge) Size() int { return 16 }

// Write encodes e as two little-endian 8-byte usize fields, per spec.md §6.
func (e Edge) Write(w *codec.Writer) {
	w.WriteInt(e.A)
	w.WriteInt(e.B)
}

// ReadEdge decodes an Edge written by Write.
func ReadEdge(r *codec.Reader) (Edge, error) {
	a, err := r.ReadInt()
	if err != nil {
		return Edge{}, err
	}
	b, err := r.ReadInt()
	if err != nil {
		return Edge{}, err
	}
	return Edge{A: a, B: b}, nil
}

// Graph is a node-payload-parameterized colored graph with exactly NumNodes
// nodes and a fixed, deterministically-ordered edge sequence.
//
// Edge storage/iteration is backed by a gonum simple.UndirectedGraph so that
// adjacency queries reuse a real graph library instead of a hand-rolled
// adjacency list; the node payload and the public edge ordering are kept
// exactly as spec.md §3/§4.2 mandate regardless of how gonum orders its own
// internal iteration.
type Graph[T any] struct {
	nodes    [NumNodes]T
	edges    []Edge
	backing  *simple.UndirectedGraph
}

// New builds a Graph from node payloads and an ordered edge sequence. The
// order of edges is preserved exactly as given: it is significant, since
// both prover and verifier must agree on edge indexing.
func New[T any](nodes [NumNodes]T, edges []Edge) *Graph[T] {
	backing := simple.NewUndirectedGraph()
	for i := 0; i < NumNodes; i++ {
		backing.AddNode(simple.Node(int64(i)))
	}
	for _, e := range edges {
		backing.SetEdge(backing.NewEdge(simple.Node(int64(e.A)), simple.Node(int64(e.B))))
	}
	return &Graph[T]{nodes: nodes, edges: edges, backing: backing}
}

// At returns the payload at node index i.
func (g *Graph[T]) At(i int) T {
	return g.nodes[i]
}

// Set overwrites the payload at node index i.
func (g *Graph[T]) Set(i int, v T) {
	g.nodes[i] = v
}

// Nodes returns the node payloads in index order. The array is returned by
// value, so mutating it does not affect the graph.
func (g *Graph[T]) Nodes() [NumNodes]T {
	return g.nodes
}

// Edges returns the deterministic edge sequence.
func (g *Graph[T]) Edges() []Edge {
	return g.edges
}

// NumEdges is the number of edges in the graph.
func (g *Graph[T]) NumEdges() int {
	return len(g.edges)
}

// Get returns the payloads at both endpoints of e.
func (g *Graph[T]) Get(e Edge) (T, T) {
	return g.nodes[e.A], g.nodes[e.B]
}

// HasEdge reports whether e is present, consulting the gonum backing graph.
func (g *Graph[T]) HasEdge(e Edge) bool {
	return g.backing.HasEdgeBetween(int64(e.A), int64(e.B))
}

// RandomEdge draws a uniformly random edge using r. It panics if the graph
// has no edges, which cannot happen for a well-formed Sudoku reduction.
func (g *Graph[T]) RandomEdge(r *rand.Rand) Edge {
	if len(g.edges) == 0 {
		panic("graph: RandomEdge called on an edge-less graph")
	}
	return g.edges[r.Intn(len(g.edges))]
}

// ErrInvalidBytes names a graph wire encoding that is malformed in a way the
// codec primitives alone do not detect (e.g. a node count that does not
// match NumNodes). No function in this package returns it.
var ErrInvalidBytes = fmt.Errorf("graph: invalid bytes")
