package sudoku

// Solve tries to complete s by constraint propagation plus search,
// adapted from _examples/thriqon-sudoku/sudoku.go's emptySquare/
// filledOutSquare approach (itself based on Peter Norvig's "Solving Every
// Sudoku Puzzle") to operate over Sudoku's Grid/Given data model instead
// of the teacher's internal coordinate/square representation.
//
// This exists to build test fixtures (a known-good completion of the
// reference puzzle, for example) without
// hand-transcribing 81 cells; it has no role in the commitment protocol
// itself, and is not the "puzzle generation" Non-goal (which concerns
// producing new, uniquely-solvable puzzles for end users).
func (s Sudoku) Solve() (Sudoku, error) {
	board := newBoard()
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if v := s.Grid[y][x]; v != 0 {
				if !board.assign(9*y+x, v) {
					return s, ErrConflict
				}
			}
		}
	}

	solved, ok := board.search()
	if !ok {
		return s, ErrConflict
	}

	var out Sudoku
	out.Given = s.Given
	for i := 0; i < 81; i++ {
		out.Grid[i/9][i%9] = solved.values[i]
	}
	return out, nil
}

// board tracks, for each of the 81 cells, either its final value or a
// bitset of the values still possible (bit v set means v is still
// possible). This mirrors the teacher's eliminatedValues/
// numberOfEliminatedValues split but folds it into a single per-cell
// candidate bitmask, which is all Go's lack of the teacher's
// interface{}-typed square needs.
type board struct {
	values     [81]Color // 0 means "not yet fixed"
	candidates [81]uint16 // bit v (1<<v) set means v is still possible
}

func newBoard() *board {
	b := &board{}
	for i := range b.candidates {
		b.candidates[i] = 0b1111111110 // bits 1..9 set
	}
	return b
}

func (b *board) clone() *board {
	c := *b
	return &c
}

func (b *board) numCandidates(i int) int {
	n := 0
	for v := 1; v <= 9; v++ {
		if b.candidates[i]&(1<<uint(v)) != 0 {
			n++
		}
	}
	return n
}

func (b *board) candidateList(i int) []Color {
	var out []Color
	for v := 1; v <= 9; v++ {
		if b.candidates[i]&(1<<uint(v)) != 0 {
			out = append(out, Color(v))
		}
	}
	return out
}

// assign fixes cell i to v, propagating the elimination to every peer.
// Returns false on conflict.
func (b *board) assign(i int, v Color) bool {
	if b.values[i] != 0 {
		return b.values[i] == v
	}
	if b.candidates[i]&(1<<uint(v)) == 0 {
		return false
	}

	b.values[i] = v
	b.candidates[i] = 1 << uint(v)

	for _, p := range peersOf(i) {
		if !b.eliminate(p, v) {
			return false
		}
	}
	return true
}

// eliminate removes v from cell i's candidates, propagating forced
// assignments.
func (b *board) eliminate(i int, v Color) bool {
	if b.values[i] == v {
		return false // peer already fixed to the value we're removing
	}
	if b.candidates[i]&(1<<uint(v)) == 0 {
		return true // already eliminated
	}
	b.candidates[i] &^= 1 << uint(v)

	if b.values[i] == 0 && b.numCandidates(i) == 1 {
		only := b.candidateList(i)[0]
		b.values[i] = only
		for _, p := range peersOf(i) {
			if !b.eliminate(p, only) {
				return false
			}
		}
	}
	if b.candidates[i] == 0 && b.values[i] == 0 {
		return false
	}
	return true
}

// search picks the unfixed cell with fewest candidates and tries each in
// turn, backtracking on conflict — the teacher's "square with the least
// possibilities filled first" heuristic.
func (b *board) search() (*board, bool) {
	best := -1
	bestCount := 10
	for i := 0; i < 81; i++ {
		if b.values[i] != 0 {
			continue
		}
		if n := b.numCandidates(i); n < bestCount {
			bestCount = n
			best = i
			if n == 0 {
				return nil, false
			}
		}
	}
	if best == -1 {
		return b, true
	}

	for _, v := range b.candidateList(best) {
		next := b.clone()
		if !next.assign(best, v) {
			continue
		}
		if solved, ok := next.search(); ok {
			return solved, true
		}
	}
	return nil, false
}

var peersCache [81][]int

func init() {
	for i := 0; i < 81; i++ {
		x, y := i%9, i/9
		seen := make(map[int]bool)
		for x2 := 0; x2 < 9; x2++ {
			if x2 != x {
				seen[y*9+x2] = true
			}
		}
		for y2 := 0; y2 < 9; y2++ {
			if y2 != y {
				seen[y2*9+x] = true
			}
		}
		bx, by := x/3*3, y/3*3
		for dy := 0; dy < 3; dy++ {
			for dx := 0; dx < 3; dx++ {
				j := (by+dy)*9 + (bx + dx)
				if j != i {
					seen[j] = true
				}
			}
		}
		for j := range seen {
			peersCache[i] = append(peersCache[i], j)
		}
	}
}

func peersOf(i int) []int {
	return peersCache[i]
}
