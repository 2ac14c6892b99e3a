package graph

// PuzzleNode is the minimal view of a Sudoku puzzle the reduction needs: a
// 9×9 grid of colors (0 means empty) and the set of given-cell coordinates.
// Defined here, rather than importing the sudoku package directly, so that
// graph has no dependency on sudoku's parsing/solving machinery — only on
// the shape spec.md §3 describes.
type PuzzleNode interface {
	CellColor(x, y int) uint8
	IsGiven(x, y int) bool
}

// Of builds the deterministic Sudoku→graph reduction described in spec.md
// §4.2: 81 cell nodes in row-major order, 9 palette-anchor nodes (index
// 80+v carries fixed color v), row/column/box "distinct" edges, and
// palette-anchor edges pinning every given cell to its stated value.
//
// This mirrors original_source/crates/sudoku/src/lib.rs's
// `impl From<&Sudoku<GIVEN>> for Graph<u8>` edge-enumeration order exactly,
// since both prover and verifier must derive identical edge indices.
func Of(puzzle PuzzleNode) *Graph[uint8] {
	var nodes [NumNodes]uint8

	const expectedCoreEdges = 810
	edges := make([]Edge, 0, expectedCoreEdges)

	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			cell := puzzle.CellColor(x, y)
			nodes[9*y+x] = cell

			// Row edges: this cell against every later cell in the same row.
			for i := x + 1; i < 9; i++ {
				edges = append(edges, NewEdge(9*y+x, 9*y+i))
			}

			// Column edges: this cell against every later cell in the same column.
			for j := y + 1; j < 9; j++ {
				edges = append(edges, NewEdge(9*y+x, 9*j+x))
			}

			// Box edges: remaining rows of this cell's 3x3 box, columns
			// other than this cell's own column within that box.
			boxRowEnd := (y+3)/3*3 - 1
			boxColStart := x / 3 * 3
			for j := y + 1; j <= boxRowEnd; j++ {
				for i := boxColStart; i < boxColStart+3; i++ {
					if i == x {
						continue
					}
					edges = append(edges, NewEdge(9*y+x, 9*j+i))
				}
			}
		}
	}

	given := 0
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if !puzzle.IsGiven(x, y) {
				continue
			}
			given++
			value := int(puzzle.CellColor(x, y))
			for v := 1; v <= 9; v++ {
				if v == value {
					continue
				}
				edges = append(edges, NewEdge(9*y+x, 80+v))
			}
		}
	}

	for v := 1; v <= 9; v++ {
		nodes[80+v] = uint8(v)
	}

	expected := expectedCoreEdges + 8*given
	if len(edges) != expected {
		panic("graph: reduction produced an unexpected edge count")
	}

	return New(nodes, edges)
}
