package protocol

import "errors"

// Errors returned by Verifier.RunPass, classifying the three failure kinds
// spec.md §7 describes.
var (
	// ErrHashMismatch means an opened (color, key) pair does not reproduce
	// the committed digest: a soundness failure, meaning the prover is
	// cheating or buggy.
	ErrHashMismatch = errors.New("protocol: commitment does not open consistently")

	// ErrAdjacentIdenticalNodes means a challenged edge's two endpoints
	// opened to the same color: the prover's coloring is not proper.
	ErrAdjacentIdenticalNodes = errors.New("protocol: adjacent nodes opened to the same color")

	// ErrUnsolved means an opened color was 0 (empty), i.e. the prover's
	// grid is not a complete solution.
	ErrUnsolved = errors.New("protocol: opened an empty cell")
)

// Errors returned by the prover's HTTP handlers and by the transport layer
// on protocol/transport-level failures (spec.md §7 kind 1).
var (
	// ErrChallengeBeforeCommit means a challenge request arrived with the
	// literal zero session id (uuid.Nil) — no commit was ever made on this
	// connection to echo a session id back from (spec.md §4.3 state
	// machine: a challenge received in Idle is rejected).
	ErrChallengeBeforeCommit = errors.New("protocol: challenge received before a commit")

	// ErrBatchSizeMismatch means a challenge batch's length did not match
	// the session's committed sub-round count N.
	ErrBatchSizeMismatch = errors.New("protocol: challenge batch length does not match committed sub-round count")

	// ErrUnknownSession means a challenge referenced a well-formed but
	// unrecognized session id: already consumed by a prior challenge, or
	// simply never issued by this prover.
	ErrUnknownSession = errors.New("protocol: unknown session")
)
