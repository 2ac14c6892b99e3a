// Package protocol implements the commitment/challenge/response engine: a
// Prover that commits to randomized, hashed colorings of a Sudoku's graph
// and opens individual edges on challenge, and a Verifier that drives
// repeated rounds against a Prover and checks the statistical soundness
// conditions spec.md §4.3/§8 describe.
package protocol

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/sudokuzkp/sudokuzkp/graph"
	"github.com/sudokuzkp/sudokuzkp/sudoku"
)

// Prover holds the current Sudoku under test and the session table of
// pending commitments. The Sudoku is shared mutable state guarded by an
// RWMutex per spec.md §5: readers (Commit) snapshot the grid under a read
// lock before reducing it to a graph; an editor goroutine would take the
// write lock to mutate a cell. This repository carries no interactive
// editor, so SetSudoku is the only writer in practice, but the lock is kept
// to preserve the concurrency contract a TUI front-end would rely on.
type Prover struct {
	mu     sync.RWMutex
	puzzle sudoku.Sudoku

	store *Store
}

// NewProver returns a Prover holding puzzle as its current candidate
// solution.
func NewProver(puzzle sudoku.Sudoku) *Prover {
	return &Prover{puzzle: puzzle, store: NewStore()}
}

// SetSudoku replaces the prover's current candidate solution, guarded by
// the same lock Commit uses to snapshot it.
func (p *Prover) SetSudoku(puzzle sudoku.Sudoku) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.puzzle = puzzle
}

// clampCount applies §6's batch-size clamp: count=0 (or negative) defaults
// to numEdges; any other value clamps to [1, numEdges].
func clampCount(count, numEdges int) int {
	if count <= 0 {
		return numEdges
	}
	if count > numEdges {
		return numEdges
	}
	return count
}

// Commit performs step 2 of §4.3: it reloads the current Sudoku, reduces it
// to a graph, draws N independent sub-rounds (fresh mapper + HKDF-derived
// keys each), computes the 90 node commitments for each, retains the
// sub-round secrets in a new Session, and returns the commitment batch
// alongside the session id the challenge request must echo.
func (p *Prover) Commit(count int) (uuid.UUID, CommitmentBatch, error) {
	p.mu.RLock()
	puzzle := p.puzzle
	p.mu.RUnlock()

	g := graph.Of(&puzzle)
	n := clampCount(count, g.NumEdges())

	subs := make([]subround, n)
	batch := make(CommitmentBatch, n)

	for j := 0; j < n; j++ {
		mapper, err := graph.NewMapper()
		if err != nil {
			return uuid.Nil, nil, fmt.Errorf("protocol: drawing mapper: %w", err)
		}
		secret, err := newSecret()
		if err != nil {
			return uuid.Nil, nil, fmt.Errorf("protocol: drawing key secret: %w", err)
		}
		keys, err := deriveKeys(secret, j)
		if err != nil {
			return uuid.Nil, nil, fmt.Errorf("protocol: deriving keys: %w", err)
		}

		relabel, commitments := graph.Commit(g, mapper, keys)

		subs[j] = subround{mapper: mapper, keys: keys, relabel: relabel}
		batch[j] = CommitmentSet(commitments)
	}

	sess := &Session{id: uuid.New(), subrounds: subs}
	p.store.Begin(sess)

	return sess.id, batch, nil
}

// Open performs step 4 of §4.3: given the session id a prior Commit
// returned and the verifier's chosen edges (one per sub-round, in order),
// it looks up and consumes the matching Session and returns, for each
// sub-round, the two endpoint colors under that sub-round's mapper and
// their two keys.
//
// The session is consumed (removed from the store) whether or not this
// call succeeds: a challenge always returns the connection to Idle, per
// §4.3's state machine, and a prover must never answer the same commitment
// twice.
//
// id == uuid.Nil means the caller never had a session to echo back (the
// literal "no prior commit" case, §4.3's Idle state) and yields
// ErrChallengeBeforeCommit. Any other id not present in the store was
// well-formed but unrecognized — already consumed, or simply wrong — and
// yields ErrUnknownSession instead.
func (p *Prover) Open(id uuid.UUID, edges ChallengeBatch) (OpeningBatch, error) {
	if id == uuid.Nil {
		return nil, ErrChallengeBeforeCommit
	}
	sess, ok := p.store.Take(id)
	if !ok {
		return nil, ErrUnknownSession
	}
	if len(edges) != sess.Count() {
		return nil, ErrBatchSizeMismatch
	}

	openings := make(OpeningBatch, len(edges))
	for j, e := range edges {
		sub := sess.subrounds[j]
		openings[j] = Opening{
			Colors: [2]uint8{sub.relabel[e.A], sub.relabel[e.B]},
			Keys:   [2]uint64{sub.keys[e.A], sub.keys[e.B]},
		}
	}
	return openings, nil
}
