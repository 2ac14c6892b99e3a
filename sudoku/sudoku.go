// Package sudoku provides the puzzle data model spec.md §3 describes — a
// 9×9 grid of colors plus the set of given cells — along with text
// parsing/rendering and a constraint-propagation solver.
//
// The data model and parsing/rendering conventions are adapted from
// _examples/thriqon-sudoku/sudoku.go (digit-or-dot grid text, box-drawing
// String output) and from original_source/crates/sudoku/src/lib.rs's
// heavier Unicode box-drawing, ANSI-highlighted Display implementation.
package sudoku

import (
	"fmt"
	"io"
	"strings"
)

// Color is a Sudoku cell value: 0 means empty, 1..=9 are the true colors.
type Color = uint8

// Coord is a 0-based cell coordinate: X is the column, Y is the row.
type Coord struct {
	X, Y int
}

// Sudoku is a 9x9 puzzle: a grid of colors and the set of cells whose value
// was given by the puzzle statement (grid[y][x] must be in 1..=9 for every
// given coordinate).
type Sudoku struct {
	Grid  [9][9]Color
	Given []Coord
}

// CellColor satisfies graph.PuzzleNode.
func (s *Sudoku) CellColor(x, y int) Color {
	return s.Grid[y][x]
}

// IsGiven satisfies graph.PuzzleNode.
func (s *Sudoku) IsGiven(x, y int) bool {
	for _, c := range s.Given {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

// ErrConflict is returned when an assignment or a parse would violate
// Sudoku's distinctness constraints.
var ErrConflict = fmt.Errorf("sudoku: conflict")

// ParseReader reads a 9x9 puzzle from rr. Any digit 1-9 fills a cell
// directly (and is recorded as given); '.' or '0' denotes an empty cell;
// any other rune is ignored as a separator. Returns ErrConflict if two
// given digits collide under Sudoku's row/column/box constraints.
func ParseReader(rr io.RuneReader) (Sudoku, error) {
	var s Sudoku

	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			v, err := nextCellRune(rr)
			if err != nil {
				return s, err
			}
			if v == 0 {
				continue
			}
			s.Grid[y][x] = v
			s.Given = append(s.Given, Coord{X: x, Y: y})
		}
	}

	if !isConsistent(s.Grid) {
		return s, ErrConflict
	}

	return s, nil
}

func nextCellRune(rr io.RuneReader) (Color, error) {
	for {
		r, _, err := rr.ReadRune()
		if err != nil {
			return 0, err
		}
		switch {
		case r == '.' || r == '0':
			return 0, nil
		case r >= '1' && r <= '9':
			return Color(r - '0'), nil
		}
	}
}

// Parse is a convenience wrapper for ParseReader that accepts a string.
func Parse(s string) (Sudoku, error) {
	return ParseReader(strings.NewReader(s))
}

// isConsistent reports whether the grid's non-zero cells already satisfy
// the row/column/box distinctness constraints, independent of whether the
// grid is fully filled in.
func isConsistent(grid [9][9]Color) bool {
	for y := 0; y < 9; y++ {
		var seen [10]bool
		for x := 0; x < 9; x++ {
			if v := grid[y][x]; v != 0 {
				if seen[v] {
					return false
				}
				seen[v] = true
			}
		}
	}
	for x := 0; x < 9; x++ {
		var seen [10]bool
		for y := 0; y < 9; y++ {
			if v := grid[y][x]; v != 0 {
				if seen[v] {
					return false
				}
				seen[v] = true
			}
		}
	}
	for by := 0; by < 3; by++ {
		for bx := 0; bx < 3; bx++ {
			var seen [10]bool
			for dy := 0; dy < 3; dy++ {
				for dx := 0; dx < 3; dx++ {
					if v := grid[by*3+dy][bx*3+dx]; v != 0 {
						if seen[v] {
							return false
						}
						seen[v] = true
					}
				}
			}
		}
	}
	return true
}

// String renders the grid with ASCII box-drawing separators, matching
// _examples/thriqon-sudoku/sudoku.go's output convention exactly (so the
// output of Parse(s.String()) round-trips).
func (s Sudoku) String() string {
	var b strings.Builder
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if v := s.Grid[y][x]; v == 0 {
				b.WriteByte('.')
			} else {
				fmt.Fprintf(&b, "%d", v)
			}
			switch {
			case x == 8:
				b.WriteByte('\n')
			case (x+1)%3 == 0:
				b.WriteString(" |")
			default:
				b.WriteByte(' ')
			}
		}
		if y == 2 || y == 5 {
			b.WriteString("------+------+------\n")
		}
	}
	return b.String()
}

// Render draws the heavier Unicode box-drawing grid from
// original_source/crates/sudoku/src/lib.rs's Display implementation. When
// highlightGivens is true, given cells are rendered in reverse video.
func (s Sudoku) Render(highlightGivens bool) string {
	var b strings.Builder
	b.WriteString("╔═══╤═══╤═══╦═══╤═══╤═══╦═══╤═══╤═══╗\n")
	for y := 0; y < 9; y++ {
		if y == 3 || y == 6 {
			b.WriteString("╠═══╪═══╪═══╬═══╪═══╪═══╬═══╪═══╪═══╣\n")
		} else if y > 0 {
			b.WriteString("╟───┼───┼───╫───┼───┼───╫───┼───┼───╢\n")
		}

		b.WriteString("║")
		for x := 0; x < 9; x++ {
			if x == 3 || x == 6 {
				b.WriteString("║")
			} else if x > 0 {
				b.WriteString("│")
			}

			v := s.Grid[y][x]
			switch {
			case v == 0:
				b.WriteString("   ")
			case highlightGivens && s.IsGiven(x, y):
				fmt.Fprintf(&b, "\x1b[1;7m %d \x1b[0m", v)
			default:
				fmt.Fprintf(&b, " %d ", v)
			}
		}
		b.WriteString("║\n")
	}
	b.WriteString("╚═══╧═══╧═══╩═══╧═══╧═══╩═══╧═══╧═══╝")
	return b.String()
}
