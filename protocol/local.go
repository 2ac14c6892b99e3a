package protocol

import "github.com/google/uuid"

// LocalTransport implements Transport by calling a Prover's methods
// directly, with no network in between. It is what cmd/verify's in-process
// self-check uses (grounded in original_source/crates/prover/src/main.rs's
// commented-out `for _ in 0..1_000_000 { ... }` in-process encrypt/verify
// loop and original_source/src/main.rs's single-binary main), and it is
// equally useful for tests that want to exercise Verifier against a real
// Prover without paying for an httptest.Server.
type LocalTransport struct {
	Prover *Prover
}

// RequestCommitments implements Transport.
func (l LocalTransport) RequestCommitments(count int) (uuid.UUID, CommitmentBatch, error) {
	return l.Prover.Commit(count)
}

// SendChallenges implements Transport.
func (l LocalTransport) SendChallenges(id uuid.UUID, edges ChallengeBatch) (OpeningBatch, error) {
	return l.Prover.Open(id, edges)
}
