package protocol

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/sudokuzkp/sudokuzkp/graph"
)

// Transport is implemented by whatever carries commitments and challenges
// between verifier and prover. The in-process self-check tool
// (cmd/verify) and the long-running cmd/verifier daemon implement it
// differently — one calling Prover methods directly, the other issuing
// HTTP requests through Client — but Verifier itself is transport-agnostic,
// per spec.md §1's "any transport preserving message boundaries suffices".
type Transport interface {
	RequestCommitments(count int) (uuid.UUID, CommitmentBatch, error)
	SendChallenges(id uuid.UUID, edges ChallengeBatch) (OpeningBatch, error)
}

// Verifier drives repeated rounds (spec.md §4.3) against a Transport and
// checks the hash-equality and color-inequality conditions of step 5.
type Verifier struct {
	transport Transport
	edges     []graph.Edge
	rng       *rand.Rand
}

// NewVerifier returns a Verifier that challenges edges drawn from edges
// (the public, deterministic edge set of the graph under test — the
// verifier never needs node colors, only the edge list, since it holds the
// puzzle and not a solution) using rng for edge selection.
func NewVerifier(transport Transport, edges []graph.Edge, rng *rand.Rand) *Verifier {
	return &Verifier{transport: transport, edges: edges, rng: rng}
}

// RunPass executes one full commit/challenge/open/verify round of count
// sub-rounds (step 1-5 of §4.3) and reports the first failure encountered,
// or nil on success. count=0 requests the transport's default (num_edges).
func (v *Verifier) RunPass(count int) error {
	id, commitments, err := v.transport.RequestCommitments(count)
	if err != nil {
		return fmt.Errorf("protocol: requesting commitments: %w", err)
	}

	n := len(commitments)
	challenges := make(ChallengeBatch, n)
	for j := 0; j < n; j++ {
		challenges[j] = v.edges[v.rng.Intn(len(v.edges))]
	}

	openings, err := v.transport.SendChallenges(id, challenges)
	if err != nil {
		return fmt.Errorf("protocol: sending challenges: %w", err)
	}
	if len(openings) != n {
		return ErrBatchSizeMismatch
	}

	for j := 0; j < n; j++ {
		if err := checkOpening(commitments[j], challenges[j], openings[j]); err != nil {
			return fmt.Errorf("protocol: sub-round %d: %w", j, err)
		}
	}
	return nil
}

// checkOpening performs step 5 of §4.3 for a single sub-round.
func checkOpening(commitment CommitmentSet, edge graph.Edge, opening Opening) error {
	u, v := opening.Colors[0], opening.Colors[1]
	if u == 0 || v == 0 {
		return ErrUnsolved
	}
	if u == v {
		return ErrAdjacentIdenticalNodes
	}
	if commitment[edge.A] != graph.Hash(u, opening.Keys[0]) {
		return ErrHashMismatch
	}
	if commitment[edge.B] != graph.Hash(v, opening.Keys[1]) {
		return ErrHashMismatch
	}
	return nil
}

// RunRounds runs passes sequential passes of count sub-rounds each,
// stopping at the first failing pass. This is the shape the long-running
// verifier daemon uses: 10 outer passes of 10 sub-rounds, per spec.md §8.
func (v *Verifier) RunRounds(passes, count int) error {
	for p := 0; p < passes; p++ {
		if err := v.RunPass(count); err != nil {
			return fmt.Errorf("pass %d: %w", p, err)
		}
	}
	return nil
}
