package protocol

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sudokuzkp/sudokuzkp/graph"
)

// subround holds one sub-round's secret state: the color relabeling and key
// vector the prover must remember between answering a GET commitments
// request and the matching POST challenges request.
type subround struct {
	mapper  graph.Mapper
	keys    graph.Keys
	relabel [graph.NumNodes]uint8
}

// Session is the per-connection secret state §9 asks to be an explicit
// value rather than a bare mutable prover field: the N sub-rounds produced
// by one commit, indexed exactly as they were returned to the verifier.
//
// A Session is immutable once built; Store owns the Idle/Committed
// transition around it.
type Session struct {
	id        uuid.UUID
	subrounds []subround
}

// ID returns the session identifier the transport binds to the
// X-Session-Id header.
func (s *Session) ID() uuid.UUID { return s.id }

// Count is N, the number of sub-rounds committed in this session.
func (s *Session) Count() int { return len(s.subrounds) }

// Store is the prover's per-connection session table, implementing the
// Idle→Committed(N, {(Mⱼ,Kⱼ)})→Idle state machine of spec.md §4.3. A
// connection is represented by a uuid.UUID rather than the reference
// design's single global slot, so that multiple verifiers (or a verifier
// retrying after a dropped connection) never clobber each other's pending
// commitments. Every commit is stored under a freshly generated id, so a
// later commit never replaces an earlier pending session: a session leaves
// the table only when a challenge takes it, and a session whose challenge
// never arrives (for example after a dropped connection) stays in the table,
// since nothing expires entries.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewStore returns an empty session table.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Begin records a freshly committed session under its id. Sessions stored
// under other ids are left in place.
func (s *Store) Begin(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
}

// Take looks up and removes the session for id: a challenge consumes the
// commitment it answers, returning the prover to Idle for that connection.
// The second return value is false if id is unknown (already consumed, or
// simply never issued); the caller reports that as
// ErrUnknownSession. The id == uuid.Nil case (no session to look up at
// all) is handled by the caller before Take is reached and reports
// ErrChallengeBeforeCommit instead.
func (s *Store) Take(id uuid.UUID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	delete(s.sessions, id)
	return sess, true
}
