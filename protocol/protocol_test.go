package protocol

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/sudokuzkp/sudokuzkp/graph"
	"github.com/sudokuzkp/sudokuzkp/sudoku"
)

// referencePuzzleText is the canonical test vector from spec.md's GLOSSARY.
const referencePuzzleText = `4 . . . 9 6 2 . 8
3 . 8 1 . . . 9 .
9 6 1 . . . 7 . .
. . 3 4 . 5 9 6 .
6 . . 9 2 8 . 7 4
. . 4 7 . . 1 . .
. . 9 . . 2 . . 1
. . . 8 3 1 6 4 .
. . . . 4 . . 2 7
`

func referencePuzzle(t *testing.T) sudoku.Sudoku {
	t.Helper()
	s, err := sudoku.Parse(referencePuzzleText)
	if err != nil {
		t.Fatalf("parsing reference puzzle: %v", err)
	}
	return s
}

func referenceSolution(t *testing.T) sudoku.Sudoku {
	t.Helper()
	solved, err := referencePuzzle(t).Solve()
	if err != nil {
		t.Fatalf("solving reference puzzle: %v", err)
	}
	return solved
}

// edgesFor returns the public edge set the verifier would derive from the
// puzzle alone (no solution needed: edge topology depends only on cell
// positions and given values, never on the unfilled cells' contents).
func edgesFor(t *testing.T, puzzle sudoku.Sudoku) []graph.Edge {
	t.Helper()
	return graph.Of(&puzzle).Edges()
}

func newVerifier(t *testing.T, transport Transport, puzzle sudoku.Sudoku) *Verifier {
	t.Helper()
	return NewVerifier(transport, edgesFor(t, puzzle), rand.New(rand.NewSource(1)))
}

// TestS1HonestProverPassesRepeatedRounds covers spec.md §9's S1 scenario:
// an honest prover holding the reference solution passes 10 passes of 10
// sub-rounds each.
func TestS1HonestProverPassesRepeatedRounds(t *testing.T) {
	puzzle := referencePuzzle(t)
	prover := NewProver(referenceSolution(t))
	v := newVerifier(t, LocalTransport{Prover: prover}, puzzle)

	if err := v.RunRounds(10, 10); err != nil {
		t.Fatalf("expected success, got: %v", err)
	}
}

// latinSquareIgnoringBoxes builds spec.md §9's S2 fixture: row y is [1..9]
// rotated by y·(3 if y<3 else 4) mod 9. Every row is a permutation of 1..9,
// but the rotations (0,3,6,3,7,2,6,1,5) repeat, so rows 1 and 3 (and rows 2
// and 6) coincide: columns are not distinct, and the 3x3 box constraint is
// not respected either.
func latinSquareIgnoringBoxes() sudoku.Sudoku {
	var s sudoku.Sudoku
	for y := 0; y < 9; y++ {
		shift := 3
		if y >= 3 {
			shift = 4
		}
		rot := (y * shift) % 9
		for x := 0; x < 9; x++ {
			s.Grid[y][x] = uint8((x+rot)%9) + 1
		}
	}
	return s
}

// TestS2LatinSquareViolatesBoxConstraint covers S2. The construction in
// latinSquareIgnoringBoxes is known to collide on color 4 between cells
// (x=0,y=3) and (x=1,y=5), which the reduction connects by an intra-box
// edge (both fall in the box spanning rows 3-5, columns 0-2); challenging
// exactly that edge deterministically reproduces the violation without
// relying on the verifier's random edge draw to land on it.
func TestS2LatinSquareViolatesBoxConstraint(t *testing.T) {
	latin := latinSquareIgnoringBoxes()
	if latin.Grid[3][0] != latin.Grid[5][1] {
		t.Fatalf("fixture assumption broken: (0,3)=%d (1,5)=%d", latin.Grid[3][0], latin.Grid[5][1])
	}
	violating := graph.NewEdge(9*3+0, 9*5+1)

	prover := NewProver(latin)
	id, batch, err := prover.Commit(1)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	openings, err := prover.Open(id, ChallengeBatch{violating})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	err = checkOpening(batch[0], violating, openings[0])
	if !errors.Is(err, ErrAdjacentIdenticalNodes) {
		t.Fatalf("expected ErrAdjacentIdenticalNodes, got: %v", err)
	}
}

// TestS3UnsolvedPuzzleYieldsUnsolved covers S3: a prover holding only the
// givens (all other cells 0) is caught as soon as a challenge opens an
// empty cell.
func TestS3UnsolvedPuzzleYieldsUnsolved(t *testing.T) {
	puzzle := referencePuzzle(t)
	prover := NewProver(puzzle)
	v := newVerifier(t, LocalTransport{Prover: prover}, puzzle)

	err := v.RunRounds(10, 10)
	if err == nil {
		t.Fatal("expected the incomplete grid to be caught")
	}
	if !errors.Is(err, ErrUnsolved) {
		t.Fatalf("expected ErrUnsolved, got: %v", err)
	}
}

// tamperingTransport wraps a Transport and flips one bit of the first
// returned opening's first key, simulating S4's tampered prover.
type tamperingTransport struct {
	inner Transport
}

func (tt tamperingTransport) RequestCommitments(count int) (uuid.UUID, CommitmentBatch, error) {
	return tt.inner.RequestCommitments(count)
}

func (tt tamperingTransport) SendChallenges(id uuid.UUID, edges ChallengeBatch) (OpeningBatch, error) {
	openings, err := tt.inner.SendChallenges(id, edges)
	if err != nil {
		return nil, err
	}
	if len(openings) > 0 {
		openings[0].Keys[0] ^= 1
	}
	return openings, nil
}

// TestS4TamperedKeyYieldsHashMismatch covers S4.
func TestS4TamperedKeyYieldsHashMismatch(t *testing.T) {
	puzzle := referencePuzzle(t)
	prover := NewProver(referenceSolution(t))
	v := newVerifier(t, tamperingTransport{inner: LocalTransport{Prover: prover}}, puzzle)

	err := v.RunPass(10)
	if !errors.Is(err, ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got: %v", err)
	}
}

// TestS6ChallengeBeforeCommitIsRejected covers S6: a challenge carrying the
// literal zero session id (no commit was ever made to echo a real one back
// from) is rejected rather than panicking or succeeding.
func TestS6ChallengeBeforeCommitIsRejected(t *testing.T) {
	prover := NewProver(referenceSolution(t))
	_, err := prover.Open(uuid.Nil, ChallengeBatch{graph.NewEdge(0, 1)})
	if !errors.Is(err, ErrChallengeBeforeCommit) {
		t.Fatalf("expected ErrChallengeBeforeCommit, got: %v", err)
	}
}

// TestUnknownSessionIsRejected exercises the other half of the Open
// not-found path: a well-formed, non-nil session id that was never handed
// out by Commit (or was already consumed) is reported distinctly from the
// no-commit-at-all case above.
func TestUnknownSessionIsRejected(t *testing.T) {
	prover := NewProver(referenceSolution(t))
	_, err := prover.Open(uuid.New(), ChallengeBatch{graph.NewEdge(0, 1)})
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got: %v", err)
	}

	id, _, err := prover.Commit(1)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if _, err := prover.Open(id, ChallengeBatch{graph.NewEdge(0, 1)}); err != nil {
		t.Fatalf("first Open: %v", err)
	}
	// The session was consumed by the first Open; challenging it again
	// must report ErrUnknownSession, not silently re-answer.
	_, err = prover.Open(id, ChallengeBatch{graph.NewEdge(0, 1)})
	if !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession on reuse, got: %v", err)
	}
}

// TestBatchSizeMismatchIsRejected exercises the challenge-length check
// §6 requires: a challenge batch whose length disagrees with the
// committed sub-round count is rejected rather than silently truncated.
func TestBatchSizeMismatchIsRejected(t *testing.T) {
	prover := NewProver(referenceSolution(t))
	id, _, err := prover.Commit(5)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	_, err = prover.Open(id, make(ChallengeBatch, 3))
	if !errors.Is(err, ErrBatchSizeMismatch) {
		t.Fatalf("expected ErrBatchSizeMismatch, got: %v", err)
	}
}

// TestCommitClampsBatchSize exercises §6's count clamp: a request for more
// sub-rounds than the graph has edges clamps to num_edges, and a request
// for zero defaults to num_edges.
func TestCommitClampsBatchSize(t *testing.T) {
	puzzle := referencePuzzle(t)
	prover := NewProver(referenceSolution(t))
	numEdges := graph.Of(&puzzle).NumEdges()

	_, batch, err := prover.Commit(numEdges + 1000)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(batch) != numEdges {
		t.Fatalf("expected clamp to %d, got %d", numEdges, len(batch))
	}

	_, batch, err = prover.Commit(0)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if len(batch) != numEdges {
		t.Fatalf("expected default of %d, got %d", numEdges, len(batch))
	}
}
