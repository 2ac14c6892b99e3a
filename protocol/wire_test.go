package protocol

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sudokuzkp/sudokuzkp/graph"
)

func newTestServer(t *testing.T, prover *Prover) *httptest.Server {
	t.Helper()
	srv := NewServer(prover, zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// TestWireRoundTrip exercises the HTTP transport end to end: a verifier
// using Client against a Server backed by an honest prover completes a
// full pass successfully, mirroring S1 but over the wire instead of
// LocalTransport.
func TestWireRoundTrip(t *testing.T) {
	puzzle := referencePuzzle(t)
	prover := NewProver(referenceSolution(t))
	ts := newTestServer(t, prover)

	client := NewClient(ts.URL, ts.Client())
	v := newVerifier(t, client, puzzle)

	if err := v.RunRounds(3, 5); err != nil {
		t.Fatalf("expected success over HTTP, got: %v", err)
	}
}

// TestS5MalformedChallengePayloadIsRejected covers S5: a challenge payload
// that the codec cannot decode (here, three bytes, too short for even the
// 8-byte length prefix) is rejected with a 400-class response rather than
// being silently accepted or causing a panic.
func TestS5MalformedChallengePayloadIsRejected(t *testing.T) {
	prover := NewProver(referenceSolution(t))
	ts := newTestServer(t, prover)

	resp, err := http.Get(ts.URL + "/commitments?count=1")
	if err != nil {
		t.Fatalf("GET commitments: %v", err)
	}
	defer resp.Body.Close()
	sessionID := resp.Header.Get(sessionHeader)
	io.Copy(io.Discard, resp.Body)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/challenges", bytes.NewReader([]byte{1, 2, 3}))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set(sessionHeader, sessionID)

	challengeResp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("POST challenges: %v", err)
	}
	defer challengeResp.Body.Close()

	if challengeResp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", challengeResp.StatusCode)
	}
}

// TestS6ChallengeBeforeCommitOverHTTP covers S6 over the wire: a POST
// challenges with no prior GET commitments (or an unrecognized session id)
// is rejected with a 400-class response.
func TestS6ChallengeBeforeCommitOverHTTP(t *testing.T) {
	prover := NewProver(referenceSolution(t))
	ts := newTestServer(t, prover)

	batch := EncodeChallengeBatch(ChallengeBatch{graph.NewEdge(0, 1)})
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/challenges", bytes.NewReader(batch))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set(sessionHeader, "00000000-0000-0000-0000-000000000000")

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("POST challenges: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
